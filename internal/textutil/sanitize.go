package textutil

import (
	"regexp"
	"strings"
)

// annotationPattern matches a "(" or "[" opener through the next ")" or "]".
// The body may not contain ")", so "(Live [2009])" is removed in one match
// while "[a) b]" stops at the first ")".
var annotationPattern = regexp.MustCompile(`[(\[][^)]*[)\]]`)

// StripQuotes removes every double quote from value. No other change is made.
func StripQuotes(value string) string {
	if !strings.Contains(value, `"`) {
		return value
	}
	return strings.ReplaceAll(value, `"`, "")
}

// StripAnnotations removes parenthesized or bracketed segments such as
// "(Remastered 2011)" or "[Live]" and trims surrounding whitespace.
func StripAnnotations(value string) string {
	return strings.TrimSpace(annotationPattern.ReplaceAllString(value, ""))
}
