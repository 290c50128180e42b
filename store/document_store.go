package store

import (
	"slices"

	"github.com/gcbaptista/go-text-indexer/model"
)

// DocumentStore holds the full text of every loaded document keyed by ID.
type DocumentStore struct {
	Docs map[string]model.Document
}

// New creates an empty document store.
func New() *DocumentStore {
	return &DocumentStore{Docs: make(map[string]model.Document)}
}

// Put stores doc, replacing any previous document with the same ID.
func (ds *DocumentStore) Put(doc model.Document) {
	ds.Docs[doc.ID] = doc
}

// Get fetches a document by ID.
func (ds *DocumentStore) Get(id string) (model.Document, bool) {
	doc, ok := ds.Docs[id]
	return doc, ok
}

// Len returns the number of stored documents.
func (ds *DocumentStore) Len() int {
	return len(ds.Docs)
}

// IDs returns all document IDs in ascending order.
func (ds *DocumentStore) IDs() []string {
	ids := make([]string, 0, len(ds.Docs))
	for id := range ds.Docs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
