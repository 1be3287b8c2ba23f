package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey reduces a raw label to its lookup form: diacritics stripped,
// lowercased, separators collapsed to single spaces. Legacy records carry
// localized, accented and mixed-case labels that must never be compared
// directly.
func foldKey(raw string) string {
	stripped, _, err := transform.String(diacriticStripper, raw)
	if err != nil {
		stripped = raw
	}
	stripped = strings.ToLower(strings.TrimSpace(stripped))
	stripped = strings.Map(func(r rune) rune {
		switch r {
		case '_', '-':
			return ' '
		}
		return r
	}, stripped)
	return strings.Join(strings.Fields(stripped), " ")
}
