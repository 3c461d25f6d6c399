package turtle

import (
	"fmt"
	"sort"
	"strings"

	"scrobblegraph/internal/graph"
	"scrobblegraph/internal/vocab"
)

// compactor rewrites IRIs to prefixed names.
type compactor struct {
	// longest namespace first so nested namespaces win
	prefixes []vocab.Prefix
}

func newCompactor(prefixes []vocab.Prefix) compactor {
	ordered := append([]vocab.Prefix(nil), prefixes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Namespace) > len(ordered[j].Namespace)
	})
	return compactor{prefixes: ordered}
}

// resource renders uri as prefix:local or <iri>.
func (c compactor) resource(uri graph.URI) string {
	value := string(uri)
	for _, p := range c.prefixes {
		local, ok := strings.CutPrefix(value, p.Namespace)
		if !ok {
			continue
		}
		if validLocalName(local) {
			return p.Name + ":" + local
		}
		break
	}
	return iriRef(value)
}

// validLocalName reports whether s can follow "prefix:" unescaped. It accepts
// a conservative ASCII subset of PN_LOCAL.
func validLocalName(s string) bool {
	if s == "" {
		return false
	}
	// PN_LOCAL may not start with '-' or '.', nor end with '.'.
	if s[0] == '.' || s[0] == '-' || s[len(s)-1] == '.' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == ':', c == '.':
		case c == '%':
			if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
				return false
			}
			i += 2
		default:
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// iriRef writes value in angle brackets, escaping characters IRIREF forbids.
func iriRef(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('<')
	for _, r := range value {
		if r <= 0x20 || strings.ContainsRune("<>\"{}|^`\\", r) {
			fmt.Fprintf(&b, "\\u%04X", r)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('>')
	return b.String()
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// literal renders a plain string literal.
func literal(value string) string {
	return `"` + literalEscaper.Replace(value) + `"`
}

// dateTime renders an xsd:dateTime typed literal.
func dateTime(value string) string {
	return literal(value) + "^^" + vocab.DatatypeDateTime
}
