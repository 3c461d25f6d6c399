package resolve

import (
	"strings"

	"scrobblegraph/internal/graph"
)

const upperHex = "0123456789ABCDEF"

// Slug joins the whitespace-separated runs of name with underscores and
// percent-encodes every byte outside the RFC 3986 unreserved set. Case is
// preserved.
func Slug(name string) string {
	joined := strings.Join(strings.Fields(name), "_")
	var b strings.Builder
	b.Grow(len(joined))
	for i := 0; i < len(joined); i++ {
		c := joined[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

// LocalURI places the slug of name in namespace.
func LocalURI(namespace, name string) graph.URI {
	return graph.URI(namespace + Slug(name))
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	default:
		return false
	}
}
