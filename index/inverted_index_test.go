package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndLookup(t *testing.T) {
	ii := New()
	ii.Record("cat", "doc1.txt")
	ii.Record("cat", "doc1.txt")
	ii.Record("cat", "doc2.txt")
	ii.Record("dog", "doc2.txt")

	docs, count := ii.Lookup("cat")
	assert.Equal(t, PostingList{"doc1.txt", "doc2.txt"}, docs)
	assert.Equal(t, 3, count)

	docs, count = ii.Lookup("dog")
	assert.Equal(t, PostingList{"doc2.txt"}, docs)
	assert.Equal(t, 1, count)

	assert.Equal(t, 2, ii.Len())
	assert.Equal(t, 4, ii.TotalOccurrences())
}

func TestLookupUnknownTerm(t *testing.T) {
	ii := New()
	docs, count := ii.Lookup("zzz")
	require.NotNil(t, docs)
	assert.Empty(t, docs)
	assert.Zero(t, count)
	assert.Zero(t, ii.Len(), "lookup must not create entries")
}

func TestLookupReturnsCopy(t *testing.T) {
	ii := New()
	ii.Record("cat", "doc1.txt")
	docs, _ := ii.Lookup("cat")
	docs[0] = "mutated"

	again, _ := ii.Lookup("cat")
	assert.Equal(t, PostingList{"doc1.txt"}, again)
}

func TestPostingsAndCountsStaySynchronized(t *testing.T) {
	ii := New()
	for _, term := range []string{"a", "b", "a", "c", "b", "a"} {
		ii.Record(term, "doc")
	}
	require.Equal(t, len(ii.Postings), len(ii.Counts))
	for term := range ii.Postings {
		_, ok := ii.Counts[term]
		assert.True(t, ok, "term %q missing from counts", term)
	}
}

func TestAllTermsOrdering(t *testing.T) {
	ii := New()
	record := func(term string, n int) {
		for i := 0; i < n; i++ {
			ii.Record(term, "doc1.txt")
		}
	}
	record("the", 3)
	record("mat", 1)
	record("cat", 2)
	record("sat", 1)
	record("dog", 2)

	entries := ii.AllTerms()
	var terms []string
	for _, e := range entries {
		terms = append(terms, e.Term)
	}
	assert.Equal(t, []string{"the", "cat", "dog", "mat", "sat"}, terms)
	assert.Equal(t, 3, entries[0].Count)
	assert.Equal(t, PostingList{"doc1.txt"}, entries[0].Documents)
}

func TestTopTerms(t *testing.T) {
	ii := New()
	for _, term := range []string{"a", "b", "c", "a"} {
		ii.Record(term, "doc")
	}
	assert.Len(t, ii.TopTerms(2), 2)
	assert.Equal(t, "a", ii.TopTerms(1)[0].Term)
	assert.Len(t, ii.TopTerms(0), 3)
	assert.Len(t, ii.TopTerms(10), 3)
}

func TestPostingListContains(t *testing.T) {
	p := PostingList{"doc1.txt", "doc2.txt"}
	assert.True(t, p.Contains("doc2.txt"))
	assert.False(t, p.Contains("doc3.txt"))

	var empty PostingList
	assert.False(t, empty.Contains("doc1.txt"))
	assert.NotNil(t, empty.Clone())
}
