package search

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/gcbaptista/go-text-indexer/index"
	"github.com/gcbaptista/go-text-indexer/internal/btree"
	"github.com/gcbaptista/go-text-indexer/internal/logger"
	"github.com/gcbaptista/go-text-indexer/internal/metrics"
	"github.com/gcbaptista/go-text-indexer/internal/tokenizer"
	"github.com/gcbaptista/go-text-indexer/services"
	"github.com/gcbaptista/go-text-indexer/store"
)

// Options tunes a search Service.
type Options struct {
	SnippetWindow int              // Characters of context on each side of a match
	CacheSize     int              // Cached query results; 0 disables the cache
	Metrics       *metrics.Metrics // Optional
}

// Service implements the read path for single-term queries.
// It fulfills the services.Searcher interface.
type Service struct {
	tree          *btree.BTree
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
	snippetWindow int
	cache         *lru.Cache[string, services.SearchResult]
	group         singleflight.Group
	metrics       *metrics.Metrics
	log           *slog.Logger
}

// NewService creates a new search Service.
func NewService(tree *btree.BTree, invertedIndex *index.InvertedIndex, documentStore *store.DocumentStore, opts Options) (*Service, error) {
	if tree == nil {
		return nil, fmt.Errorf("b-tree cannot be nil")
	}
	if invertedIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if documentStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if opts.SnippetWindow < 0 {
		return nil, fmt.Errorf("snippet window cannot be negative")
	}

	s := &Service{
		tree:          tree,
		invertedIndex: invertedIndex,
		documentStore: documentStore,
		snippetWindow: opts.SnippetWindow,
		metrics:       opts.Metrics,
		log:           logger.WithComponent("search"),
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, services.SearchResult](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create query cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// NormalizeTerm lowercases and trims a raw query term.
func NormalizeTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Search resolves a single term. An empty term returns a not-found result
// without touching the tree or the index.
func (s *Service) Search(raw string) services.SearchResult {
	start := time.Now()
	term := NormalizeTerm(raw)
	if term == "" {
		s.metrics.ObserveSearch(metrics.ResultEmpty, 0, time.Since(start))
		return services.SearchResult{Found: false, Term: term, Results: []services.ResultEntry{}}
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(term); ok {
			s.metrics.ObserveCache(true)
			s.observe(cached, start)
			return cloneResult(cached)
		}
		s.metrics.ObserveCache(false)
	}

	// Concurrent misses for the same term share one resolution.
	v, _, _ := s.group.Do(term, func() (any, error) {
		result := s.resolve(term)
		if s.cache != nil {
			s.cache.Add(term, cloneResult(result))
		}
		return result, nil
	})
	result := cloneResult(v.(services.SearchResult))
	s.observe(result, start)
	return result
}

func (s *Service) resolve(term string) services.SearchResult {
	result := services.SearchResult{
		Found:   s.tree.Search(term),
		Term:    term,
		Results: []services.ResultEntry{},
	}
	if !result.Found {
		return result
	}

	docIDs, occurrences := s.invertedIndex.Lookup(term)
	if occurrences == 0 {
		s.log.Error("term present in b-tree but not in inverted index", "term", term)
	}

	for _, docID := range docIDs {
		entry := services.ResultEntry{Document: docID}
		doc, ok := s.documentStore.Get(docID)
		if !ok {
			s.log.Error("posting references a document missing from the store", "term", term, "document", docID)
			result.Results = append(result.Results, entry)
			continue
		}
		entry.Snippet = Snippet(doc.Content, term, s.snippetWindow)
		entry.Count = tokenizer.CountTerm(doc.Content, term)
		result.Results = append(result.Results, entry)
	}
	return result
}

// InvalidateCache drops every cached result. It must be called after any
// write to the underlying structures.
func (s *Service) InvalidateCache() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *Service) observe(result services.SearchResult, start time.Time) {
	resultType := metrics.ResultMiss
	if result.Found {
		resultType = metrics.ResultHit
	}
	s.metrics.ObserveSearch(resultType, len(result.Results), time.Since(start))
}

func cloneResult(r services.SearchResult) services.SearchResult {
	r.Results = append(make([]services.ResultEntry, 0, len(r.Results)), r.Results...)
	return r
}
