package cropyield

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel applies NFKC, drops control characters and collapses
// whitespace. Case is preserved: "loamy" is not "Loamy".
func NormalizeLabel(label string) string {
	normed := norm.NFKC.String(label)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, normed)
	return strings.Join(strings.Fields(normed), " ")
}

// NormalizeLabels normalizes every label and drops empty results.
func NormalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if n := NormalizeLabel(l); n != "" {
			out = append(out, n)
		}
	}
	return out
}
