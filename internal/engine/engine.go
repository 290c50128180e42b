package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gcbaptista/go-text-indexer/config"
	"github.com/gcbaptista/go-text-indexer/index"
	"github.com/gcbaptista/go-text-indexer/internal/btree"
	internalErrors "github.com/gcbaptista/go-text-indexer/internal/errors"
	"github.com/gcbaptista/go-text-indexer/internal/indexing"
	"github.com/gcbaptista/go-text-indexer/internal/logger"
	"github.com/gcbaptista/go-text-indexer/internal/metrics"
	"github.com/gcbaptista/go-text-indexer/internal/search"
	"github.com/gcbaptista/go-text-indexer/internal/typoutil"
	"github.com/gcbaptista/go-text-indexer/model"
	"github.com/gcbaptista/go-text-indexer/services"
	"github.com/gcbaptista/go-text-indexer/store"
)

// Engine owns the document store, the inverted index and the term B-tree,
// and is the single entry point for both front ends.
// It implements the services.Engine interface.
//
// Writes take the lock exclusively; queries share it. The intended lifecycle
// is a load phase followed by a read-only serving phase.
type Engine struct {
	mu            sync.RWMutex
	settings      config.IndexSettings
	tree          *btree.BTree
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
	indexer       *indexing.Service
	searcher      *search.Service
	metrics       *metrics.Metrics
	log           *slog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithMetrics makes the engine report to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates an empty engine. Unset settings fall back to their
// defaults; a degree below 2 is rejected.
func NewEngine(settings config.IndexSettings, opts ...Option) (*Engine, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		if settings.Degree < 2 {
			return nil, internalErrors.NewDegreeError(settings.Degree)
		}
		return nil, internalErrors.NewSettingsError(problems)
	}

	tree, err := btree.New(settings.Degree)
	if err != nil {
		return nil, err
	}

	eng := &Engine{
		settings:      settings,
		tree:          tree,
		invertedIndex: index.New(),
		documentStore: store.New(),
		log:           logger.WithComponent("engine"),
	}
	for _, opt := range opts {
		opt(eng)
	}

	eng.indexer, err = indexing.NewService(eng.tree, eng.invertedIndex, eng.documentStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer service: %w", err)
	}
	eng.searcher, err = search.NewService(eng.tree, eng.invertedIndex, eng.documentStore, search.Options{
		SnippetWindow: settings.EffectiveSnippetWindow(),
		CacheSize:     settings.EffectiveCacheSize(),
		Metrics:       eng.metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}
	return eng, nil
}

// Settings returns the index settings in effect.
func (e *Engine) Settings() config.IndexSettings {
	return e.settings
}

// IndexDocument stores and indexes one document. Indexing the same ID twice
// replaces the stored text but does not retract earlier postings.
func (e *Engine) IndexDocument(documentID, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	report, err := e.indexer.IndexDocument(model.Document{ID: documentID, Content: text})
	if err != nil {
		return fmt.Errorf("failed to index document '%s': %w", documentID, err)
	}
	e.searcher.InvalidateCache()
	e.metrics.ObserveIndexed(report.Tokens, e.invertedIndex.Len(), e.tree.Height())
	e.log.Debug("document indexed",
		"document", documentID,
		"tokens", report.Tokens,
		"new_terms", report.NewTerms,
	)
	return nil
}

// Search resolves a single query term.
func (e *Engine) Search(term string) services.SearchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.searcher.Search(term)
}

// Statistics summarizes the index; terms are ordered by frequency.
func (e *Engine) Statistics() services.Statistics {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return services.Statistics{
		TotalDocuments:   e.documentStore.Len(),
		TotalTerms:       e.invertedIndex.Len(),
		TotalOccurrences: e.invertedIndex.TotalOccurrences(),
		BTreeDegree:      e.tree.Degree(),
		BTreeHeight:      e.tree.Height(),
		Terms:            toTermStats(e.invertedIndex.AllTerms()),
	}
}

// TermFrequency returns the total occurrences of term across every indexed
// document, including occurrences from earlier versions of re-indexed IDs.
func (e *Engine) TermFrequency(term string) int {
	term = search.NormalizeTerm(term)
	if term == "" {
		return 0
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	_, count := e.invertedIndex.Lookup(term)
	return count
}

// Counts returns the number of stored documents and distinct terms without
// building the full statistics.
func (e *Engine) Counts() services.Counts {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return services.Counts{
		Documents: e.documentStore.Len(),
		Terms:     e.invertedIndex.Len(),
	}
}

// TopTerms returns the n most frequent terms; n <= 0 returns all of them.
func (e *Engine) TopTerms(n int) []services.TermStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return toTermStats(e.invertedIndex.TopTerms(n))
}

// Tree returns a detached snapshot of the term B-tree.
func (e *Engine) Tree() btree.NodeSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.Snapshot()
}

// Document returns the stored text of a document.
func (e *Engine) Document(documentID string) (model.Document, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	doc, ok := e.documentStore.Get(documentID)
	if !ok {
		return model.Document{}, internalErrors.NewDocumentNotFoundError(documentID)
	}
	return doc, nil
}

// Suggest returns up to limit indexed terms within typo distance of term,
// closest first. A term that is itself indexed gets no suggestions.
func (e *Engine) Suggest(term string, limit int) []string {
	term = search.NormalizeTerm(term)
	if term == "" {
		return []string{}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.tree.Search(term) {
		return []string{}
	}
	keys := func(yield func(string) bool) { e.tree.Walk(yield) }
	suggestions := make([]string, 0, max(limit, 0))
	for _, s := range typoutil.Suggest(term, keys, limit) {
		suggestions = append(suggestions, s.Term)
	}
	return suggestions
}

// DocumentIDs lists the stored document IDs in ascending order.
func (e *Engine) DocumentIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.documentStore.IDs()
}

func toTermStats(entries []index.TermEntry) []services.TermStats {
	stats := make([]services.TermStats, 0, len(entries))
	for _, entry := range entries {
		stats = append(stats, services.TermStats{
			Term:     entry.Term,
			Count:    entry.Count,
			DocCount: len(entry.Documents),
			Docs:     entry.Documents,
		})
	}
	return stats
}
