// Package lexicon holds the agricultural vocabularies and the Indian place
// gazetteer used to read farmer questions without a language model.
package lexicon

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and collapses every run of non letter/digit runes
// to a single space, padding both ends so phrases can be matched with
// " phrase " lookups.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(' ')
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}

// ContainsTerm reports whether the normalized text contains term as whole words.
func ContainsTerm(normalized, term string) bool {
	t := strings.TrimSpace(Normalize(term))
	if t == "" {
		return false
	}
	return strings.Contains(normalized, " "+t+" ")
}

// MatchAny returns the first term found in normalized text.
func MatchAny(normalized string, terms []string) (string, bool) {
	for _, term := range terms {
		if ContainsTerm(normalized, term) {
			return term, true
		}
	}
	return "", false
}

// TitleCase capitalizes each space separated word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
