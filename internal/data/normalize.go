// Package data holds the fixed lookup tables the extraction engine depends
// on: prominent business figures, government and country vocabulary, the
// non-name blocklist, the executive title vocabulary, and known meeting
// venues. The tables are static data, not behavior; tests substitute minimal
// fixtures by going through the accessor functions.
package data

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases, trims, and strips diacritical marks from a string so
// names and organizations compare consistently across sources.
func Normalize(s string) string {
	return removeAccents(strings.ToLower(strings.TrimSpace(s)))
}

// removeAccents strips diacritical marks from a string.
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
