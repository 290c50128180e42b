// Package typoutil finds indexed terms within a small edit distance of a
// query, for "did you mean" suggestions.
package typoutil

import (
	"cmp"
	"iter"
	"slices"
	"unicode/utf8"
)

// Word lengths (in runes) from which one and two typos are tolerated.
const (
	MinWordSizeFor1Typo  = 4
	MinWordSizeFor2Typos = 7
)

// MaxDistanceFor returns how many edits a term of this length may carry.
func MaxDistanceFor(term string) int {
	switch n := utf8.RuneCountInString(term); {
	case n >= MinWordSizeFor2Typos:
		return 2
	case n >= MinWordSizeFor1Typo:
		return 1
	default:
		return 0
	}
}

// Distance computes the optimal string alignment (restricted
// Damerau-Levenshtein) distance between a and b over runes: insertions,
// deletions, substitutions and adjacent transpositions each cost one.
// Once the distance is known to exceed maxDistance it returns
// maxDistance+1; a negative maxDistance disables the cutoff.
func Distance(a, b string, maxDistance int) int {
	ra, rb := []rune(a), []rune(b)
	if maxDistance >= 0 && abs(len(ra)-len(rb)) > maxDistance {
		return maxDistance + 1
	}
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev2 := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	prevMin := 0

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				curr[j] = min(curr[j], prev2[j-2]+1)
			}
			rowMin = min(rowMin, curr[j])
		}
		// Later rows build on this row or, via a transposition, on the
		// previous one plus one edit.
		if maxDistance >= 0 && rowMin > maxDistance && prevMin >= maxDistance {
			return maxDistance + 1
		}
		prevMin = rowMin
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[len(rb)]
}

// Suggestion is a candidate term and its distance from the query.
type Suggestion struct {
	Term     string
	Distance int
}

// Suggest returns up to limit candidates within the typo allowance of term,
// closest first and ties in ascending term order. The term itself is never
// suggested. limit <= 0 returns every match.
func Suggest(term string, candidates iter.Seq[string], limit int) []Suggestion {
	maxDistance := MaxDistanceFor(term)
	if maxDistance == 0 {
		return nil
	}

	var found []Suggestion
	for candidate := range candidates {
		if candidate == term {
			continue
		}
		if d := Distance(term, candidate, maxDistance); d <= maxDistance {
			found = append(found, Suggestion{Term: candidate, Distance: d})
		}
	}
	slices.SortFunc(found, func(a, b Suggestion) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
