package index

import (
	"cmp"
	"slices"
)

// InvertedIndex maps a term to the documents containing it and keeps a
// global occurrence counter per term. Postings and Counts always hold the
// same set of terms.
type InvertedIndex struct {
	Postings map[string]PostingList
	Counts   map[string]int
	total    int
}

// TermEntry is one term of the index together with its postings and count.
type TermEntry struct {
	Term      string
	Documents PostingList
	Count     int
}

// New creates an empty inverted index.
func New() *InvertedIndex {
	return &InvertedIndex{
		Postings: make(map[string]PostingList),
		Counts:   make(map[string]int),
	}
}

// Record notes one occurrence of term in docID. The document is appended to
// the term's postings only the first time; the counter grows on every call.
func (ii *InvertedIndex) Record(term, docID string) {
	postings := ii.Postings[term]
	if !postings.Contains(docID) {
		ii.Postings[term] = append(postings, docID)
	}
	ii.Counts[term]++
	ii.total++
}

// Lookup returns a copy of the term's postings and its total occurrence
// count. Unknown terms yield an empty list and zero.
func (ii *InvertedIndex) Lookup(term string) (PostingList, int) {
	return ii.Postings[term].Clone(), ii.Counts[term]
}

// Len returns the number of distinct terms.
func (ii *InvertedIndex) Len() int {
	return len(ii.Postings)
}

// TotalOccurrences returns the number of recorded token occurrences.
func (ii *InvertedIndex) TotalOccurrences() int {
	return ii.total
}

// AllTerms returns every term sorted by occurrence count descending, ties
// broken by term in ascending byte order.
func (ii *InvertedIndex) AllTerms() []TermEntry {
	entries := make([]TermEntry, 0, len(ii.Postings))
	for term, postings := range ii.Postings {
		entries = append(entries, TermEntry{
			Term:      term,
			Documents: postings.Clone(),
			Count:     ii.Counts[term],
		})
	}
	slices.SortFunc(entries, func(a, b TermEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	return entries
}

// TopTerms returns at most n entries of AllTerms. n <= 0 returns all of them.
func (ii *InvertedIndex) TopTerms(n int) []TermEntry {
	entries := ii.AllTerms()
	if n > 0 && n < len(entries) {
		return entries[:n]
	}
	return entries
}
