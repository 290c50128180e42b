package services

import (
	"github.com/gcbaptista/go-text-indexer/internal/btree"
	"github.com/gcbaptista/go-text-indexer/model"
)

// ResultEntry is one document matching a query, with a context snippet and
// the number of whole-word occurrences of the term in that document.
type ResultEntry struct {
	Document string `json:"document"`
	Snippet  string `json:"snippet"`
	Count    int    `json:"count"`
}

// SearchResult is the answer to a single-term query. Found is true iff the
// term is a key of the B-tree.
type SearchResult struct {
	Found   bool          `json:"found"`
	Term    string        `json:"term"`
	Results []ResultEntry `json:"results"`
}

// TermStats describes one indexed term for statistics and previews.
type TermStats struct {
	Term     string   `json:"term"`
	Count    int      `json:"count"`     // Total occurrences across all documents
	DocCount int      `json:"doc_count"` // Number of documents containing the term
	Docs     []string `json:"docs"`
}

// Statistics summarizes the whole index. Terms are sorted by Count
// descending, ties broken by term ascending.
type Statistics struct {
	TotalDocuments   int         `json:"total_documents"`
	TotalTerms       int         `json:"total_terms"`
	TotalOccurrences int         `json:"total_occurrences"`
	BTreeDegree      int         `json:"btree_degree"`
	BTreeHeight      int         `json:"btree_height"`
	Terms            []TermStats `json:"terms"`
}

// Counts is the cheap subset of Statistics used by health checks.
type Counts struct {
	Documents int `json:"documents"`
	Terms     int `json:"terms"`
}

// Indexer defines the write path: adding documents to the index
type Indexer interface {
	IndexDocument(documentID, text string) error
}

// Searcher defines the read path for single-term queries
type Searcher interface {
	Search(term string) SearchResult
}

// StatsProvider exposes index-wide statistics
type StatsProvider interface {
	Statistics() Statistics
	Counts() Counts
	TopTerms(n int) []TermStats
	TermFrequency(term string) int
}

// TreeInspector exposes a read-only snapshot of the B-tree for visualization
type TreeInspector interface {
	Tree() btree.NodeSnapshot
}

// DocumentReader fetches the stored text of a document
type DocumentReader interface {
	Document(documentID string) (model.Document, error)
}

// DocumentLister lists the IDs of stored documents
type DocumentLister interface {
	DocumentIDs() []string
}

// Suggester proposes indexed terms for a query that was not found
type Suggester interface {
	Suggest(term string, limit int) []string
}

// Engine is everything a front end needs from the indexing core.
type Engine interface {
	Indexer
	Searcher
	StatsProvider
	TreeInspector
	DocumentReader
	DocumentLister
	Suggester
}
