package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-text-indexer/config"
	internalErrors "github.com/gcbaptista/go-text-indexer/internal/errors"
	"github.com/gcbaptista/go-text-indexer/internal/metrics"
	"github.com/gcbaptista/go-text-indexer/services"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	eng, err := NewEngine(config.IndexSettings{}, opts...)
	require.NoError(t, err)
	require.NoError(t, eng.IndexDocument("doc1.txt", "The cat sat on the mat."))
	require.NoError(t, eng.IndexDocument("doc2.txt", "A cat and a dog."))
	return eng
}

func TestNewEngine(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		eng, err := NewEngine(config.IndexSettings{})
		require.NoError(t, err)
		assert.Equal(t, 3, eng.Settings().Degree)
		assert.Equal(t, 50, eng.Settings().SnippetWindow)
		assert.Equal(t, 3, eng.Statistics().BTreeDegree)
	})

	t.Run("degree below two rejected", func(t *testing.T) {
		eng, err := NewEngine(config.IndexSettings{Degree: 1})
		assert.Nil(t, eng)
		assert.True(t, errors.Is(err, internalErrors.ErrInvalidDegree))
	})

	t.Run("other invalid settings rejected", func(t *testing.T) {
		_, err := NewEngine(config.IndexSettings{Extensions: []string{"txt"}})
		assert.True(t, errors.Is(err, internalErrors.ErrInvalidSettings))
	})

	t.Run("negative snippet window means no context", func(t *testing.T) {
		eng, err := NewEngine(config.IndexSettings{SnippetWindow: -1})
		require.NoError(t, err)
		require.NoError(t, eng.IndexDocument("doc1.txt", "The cat sat on the mat."))

		result := eng.Search("cat")
		require.Len(t, result.Results, 1)
		assert.Equal(t, "...cat...", result.Results[0].Snippet)
	})

	t.Run("negative cache size disables the cache", func(t *testing.T) {
		m := metrics.New()
		eng, err := NewEngine(config.IndexSettings{CacheSize: -1}, WithMetrics(m))
		require.NoError(t, err)
		require.NoError(t, eng.IndexDocument("doc1.txt", "The cat sat on the mat."))

		eng.Search("cat")
		eng.Search("cat")
		assert.Equal(t, 0.0, testutil.ToFloat64(m.CacheHitsTotal))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.CacheMissesTotal))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultHit)))
	})
}

func TestEngine_Search(t *testing.T) {
	eng := newTestEngine(t)

	cat := eng.Search("cat")
	assert.True(t, cat.Found)
	assert.Len(t, cat.Results, 2)

	dog := eng.Search("dog")
	assert.True(t, dog.Found)
	require.Len(t, dog.Results, 1)
	assert.Equal(t, "doc2.txt", dog.Results[0].Document)

	assert.Equal(t, services.SearchResult{Found: false, Term: "zzz", Results: []services.ResultEntry{}}, eng.Search("zzz"))
	assert.False(t, eng.Search("").Found)
}

func TestEngine_IndexDocumentInvalidatesCache(t *testing.T) {
	eng := newTestEngine(t)

	assert.False(t, eng.Search("bird").Found)
	require.NoError(t, eng.IndexDocument("doc3.txt", "A bird, not a cat."))
	assert.True(t, eng.Search("bird").Found)
	assert.Len(t, eng.Search("cat").Results, 3)
}

func TestEngine_IndexDocumentEmptyID(t *testing.T) {
	eng := newTestEngine(t)
	err := eng.IndexDocument("", "text")
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))
}

func TestEngine_Statistics(t *testing.T) {
	eng := newTestEngine(t)
	stats := eng.Statistics()

	assert.Equal(t, 2, stats.TotalDocuments)
	assert.Equal(t, 8, stats.TotalTerms)
	assert.Equal(t, 11, stats.TotalOccurrences)
	assert.Equal(t, 2, stats.BTreeHeight)
	require.Len(t, stats.Terms, 8)

	// count desc, then term asc
	want := []string{"a", "cat", "the", "and", "dog", "mat", "on", "sat"}
	var got []string
	for _, term := range stats.Terms {
		got = append(got, term.Term)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, services.TermStats{Term: "cat", Count: 2, DocCount: 2, Docs: []string{"doc1.txt", "doc2.txt"}}, stats.Terms[1])
}

func TestEngine_TermFrequency(t *testing.T) {
	eng := newTestEngine(t)

	assert.Equal(t, 2, eng.TermFrequency("cat"))
	assert.Equal(t, 2, eng.TermFrequency("  THE "))
	assert.Equal(t, 0, eng.TermFrequency("zzz"))
	assert.Equal(t, 0, eng.TermFrequency(""))

	// Re-indexing an ID keeps earlier occurrences in the global count while
	// the per-document count reflects only the stored text.
	require.NoError(t, eng.IndexDocument("doc2.txt", "cat cat"))
	assert.Equal(t, 4, eng.TermFrequency("cat"))

	total := 0
	for _, entry := range eng.Search("cat").Results {
		total += entry.Count
	}
	assert.Equal(t, 3, total)
}

func TestEngine_Counts(t *testing.T) {
	eng := newTestEngine(t)
	assert.Equal(t, services.Counts{Documents: 2, Terms: 8}, eng.Counts())

	empty, err := NewEngine(config.IndexSettings{})
	require.NoError(t, err)
	assert.Equal(t, services.Counts{}, empty.Counts())
}

func TestEngine_TopTerms(t *testing.T) {
	eng := newTestEngine(t)
	top := eng.TopTerms(3)
	require.Len(t, top, 3)
	assert.Equal(t, "a", top[0].Term)
	assert.Len(t, eng.TopTerms(0), 8)
}

func TestEngine_Tree(t *testing.T) {
	eng := newTestEngine(t)
	tree := eng.Tree()

	// Eight distinct terms with t=3 force one root split.
	assert.False(t, tree.Leaf)
	assert.Len(t, tree.Children, len(tree.Keys)+1)

	var keys []string
	for i, child := range tree.Children {
		keys = append(keys, child.Keys...)
		if i < len(tree.Keys) {
			keys = append(keys, tree.Keys[i])
		}
	}
	assert.Equal(t, []string{"a", "and", "cat", "dog", "mat", "on", "sat", "the"}, keys)
	assert.Equal(t, 2, eng.Statistics().BTreeHeight)
}

func TestEngine_Document(t *testing.T) {
	eng := newTestEngine(t)

	doc, err := eng.Document("doc1.txt")
	require.NoError(t, err)
	assert.Equal(t, "The cat sat on the mat.", doc.Content)

	_, err = eng.Document("missing.txt")
	assert.True(t, errors.Is(err, internalErrors.ErrDocumentNotFound))

	assert.Equal(t, []string{"doc1.txt", "doc2.txt"}, eng.DocumentIDs())
}

func TestEngine_Suggest(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.IndexDocument("doc3.txt", "Dogs and cats share a garden."))

	assert.Equal(t, []string{"cats", "mat"}, eng.Suggest("MATS", 5))
	assert.Equal(t, []string{"garden"}, eng.Suggest("gardne", 5))
	assert.Empty(t, eng.Suggest("cat", 5), "indexed terms get no suggestions")
	assert.Empty(t, eng.Suggest("cup", 5), "short terms get no suggestions")
	assert.Empty(t, eng.Suggest("  ", 5))

	assert.Len(t, eng.Suggest("cass", 1), 1)
}

func TestEngine_Metrics(t *testing.T) {
	m := metrics.New()
	eng := newTestEngine(t, WithMetrics(m))

	eng.Search("cat")
	eng.Search("cat")
	eng.Search("zzz")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocsIndexedTotal))
	assert.Equal(t, 11.0, testutil.ToFloat64(m.TokensIndexedTotal))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.UniqueTerms))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
}

func TestEngine_ConcurrentReaders(t *testing.T) {
	eng := newTestEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				eng.Search("cat")
				eng.Statistics()
				eng.Tree()
				if i == 0 && j%10 == 0 {
					_ = eng.IndexDocument(fmt.Sprintf("extra_%d.txt", j), "cat bird")
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 7, eng.Statistics().TotalDocuments)
}
