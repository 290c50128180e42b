package search

import (
	"slices"
	"strings"
	"unicode"

	"github.com/gcbaptista/go-text-indexer/internal/tokenizer"
)

// Ellipsis wraps both ends of every non-empty snippet.
const Ellipsis = "..."

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Snippet extracts up to window characters of context on each side of the
// first case-insensitive occurrence of term in content. A whole-word
// occurrence is preferred; any substring occurrence is used otherwise.
// Newlines are collapsed to spaces. It returns "" when term does not occur.
func Snippet(content, term string, window int) string {
	if term == "" || window < 0 {
		return ""
	}
	text := []rune(content)
	idx, n := locate(lowerRunes(text), lowerRunes([]rune(term)))
	if idx < 0 {
		return ""
	}

	start := max(0, idx-window)
	end := min(len(text), idx+n+window)
	return Ellipsis + newlineReplacer.Replace(string(text[start:end])) + Ellipsis
}

// locate returns the rune index of the first whole-word match of needle in
// haystack, falling back to the first plain match, and the needle length.
func locate(haystack, needle []rune) (int, int) {
	n := len(needle)
	first := -1
	for i := 0; i+n <= len(haystack); i++ {
		if !slices.Equal(haystack[i:i+n], needle) {
			continue
		}
		if tokenizer.IsBoundary(haystack, i-1) && tokenizer.IsBoundary(haystack, i+n) {
			return i, n
		}
		if first < 0 {
			first = i
		}
	}
	return first, n
}

// lowerRunes lowercases rune by rune so that indexes stay aligned with the
// original text.
func lowerRunes(runes []rune) []rune {
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}
	return lower
}
