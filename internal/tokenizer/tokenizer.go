// Package tokenizer splits raw document text into normalized word terms.
package tokenizer

import (
	"iter"
	"slices"
	"strings"
	"unicode"
)

// IsWordRune reports whether r belongs to a word: letters, numbers and underscore.
// Numbers include superscripts, fractions and roman numerals, not only decimal digits.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokens returns a lazy sequence of the lowercase word tokens in text.
// A token is a maximal run of word runes; everything else separates tokens.
// The sequence can be ranged over any number of times.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i, r := range text {
			if IsWordRune(r) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				if !yield(strings.ToLower(text[start:i])) {
					return
				}
				start = -1
			}
		}
		if start >= 0 {
			yield(strings.ToLower(text[start:]))
		}
	}
}

// Tokenize converts a string into a slice of lowercase word tokens.
func Tokenize(text string) []string {
	tokens := slices.Collect(Tokens(text))
	if tokens == nil {
		return make([]string, 0) // Empty slice, not nil
	}
	return tokens
}

// CountTerm counts the whole-word, case-insensitive occurrences of term in text.
func CountTerm(text, term string) int {
	term = strings.ToLower(term)
	if term == "" {
		return 0
	}
	count := 0
	for token := range Tokens(text) {
		if token == term {
			count++
		}
	}
	return count
}

// IsBoundary reports whether position i of runes sits on a word boundary
// edge, i.e. i is out of range or runes[i] is not a word rune.
func IsBoundary(runes []rune, i int) bool {
	return i < 0 || i >= len(runes) || !IsWordRune(runes[i])
}
