package common

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining marks so "Café" and "cafe" compare equal.
// Offsets in the result do not line up with offsets in s.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// CollapseSpaces trims s and replaces every run of whitespace with a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
