package textutil

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldKey returns the lowercase form of value used for case-insensitive ordering.
func FoldKey(value string) string {
	return cases.Lower(language.Und).String(value)
}

// CompareFolded orders a and b by FoldKey, breaking ties by exact text so the
// order is total.
func CompareFolded(a, b string) int {
	fa, fb := FoldKey(a), FoldKey(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
