package indexing

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/go-text-indexer/index"
	"github.com/gcbaptista/go-text-indexer/internal/btree"
	internalErrors "github.com/gcbaptista/go-text-indexer/internal/errors"
	"github.com/gcbaptista/go-text-indexer/internal/tokenizer"
	"github.com/gcbaptista/go-text-indexer/model"
	"github.com/gcbaptista/go-text-indexer/store"
)

// Service implements the write path: it stores each document and fans its
// tokens out to the inverted index and the term B-tree.
// It fulfills the services.Indexer interface together with the engine.
type Service struct {
	tree          *btree.BTree
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
}

// Report summarizes the effect of indexing one document.
type Report struct {
	DocumentID string
	Tokens     int // Token occurrences recorded
	NewTerms   int // Terms inserted into the B-tree for the first time
}

// NewService creates a new indexing Service over already initialized structures.
func NewService(tree *btree.BTree, invertedIndex *index.InvertedIndex, documentStore *store.DocumentStore) (*Service, error) {
	if tree == nil {
		return nil, fmt.Errorf("b-tree cannot be nil")
	}
	if invertedIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if documentStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if invertedIndex.Postings == nil {
		// Initialize the maps if nil to prevent panics later
		invertedIndex.Postings = make(map[string]index.PostingList)
	}
	if invertedIndex.Counts == nil {
		invertedIndex.Counts = make(map[string]int)
	}
	if documentStore.Docs == nil {
		documentStore.Docs = make(map[string]model.Document)
	}
	return &Service{
		tree:          tree,
		invertedIndex: invertedIndex,
		documentStore: documentStore,
	}, nil
}

// IndexDocument stores the document and records every token it contains.
// Each distinct term reaches the B-tree exactly once: the tree is searched
// before every insertion.
func (s *Service) IndexDocument(doc model.Document) (Report, error) {
	if strings.TrimSpace(doc.ID) == "" {
		return Report{}, internalErrors.NewValidationError("documentID", "cannot be empty or whitespace-only")
	}

	s.documentStore.Put(doc)

	report := Report{DocumentID: doc.ID}
	for token := range tokenizer.Tokens(doc.Content) {
		s.invertedIndex.Record(token, doc.ID)
		report.Tokens++
		if s.tree.EnsureIndexed(token) {
			report.NewTerms++
		}
	}
	return report, nil
}
