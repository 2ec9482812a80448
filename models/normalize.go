package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases a reminder name and strips its diacritics, so
// "Trocar o óleo" and "TROCAR O OLEO" compare equal. Used for the
// name_normalized column and for lookups against it.
func Normalize(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	// Decompose, drop the combining marks, recompose.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, lowered)
	if err != nil {
		return lowered
	}
	return normalized
}
