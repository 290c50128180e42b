// Package testutil provides fixtures and helpers shared by front-end tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-text-indexer/config"
	"github.com/gcbaptista/go-text-indexer/internal/engine"
	"github.com/gcbaptista/go-text-indexer/model"
	"github.com/gcbaptista/go-text-indexer/services"
)

// SampleDocuments returns the two-document corpus most tests share.
//
//	doc1.txt: the cat sat on the mat
//	doc2.txt: a cat and a dog
func SampleDocuments() []model.Document {
	return []model.Document{
		{ID: "doc1.txt", Content: "The cat sat on the mat."},
		{ID: "doc2.txt", Content: "A cat and a dog."},
	}
}

// CreateTestEngine creates an engine with default settings and indexes docs
// in order. With no docs the sample corpus is used.
func CreateTestEngine(t *testing.T, docs []model.Document, opts ...engine.Option) *engine.Engine {
	t.Helper()
	if docs == nil {
		docs = SampleDocuments()
	}

	eng, err := engine.NewEngine(config.IndexSettings{}, opts...)
	require.NoError(t, err, "Failed to create test engine")
	for _, doc := range docs {
		require.NoError(t, eng.IndexDocument(doc.ID, doc.Content), "Failed to index %s", doc.ID)
	}
	return eng
}

// WriteDocuments writes docs into a fresh temporary directory and returns
// its path. With no docs the sample corpus is written.
func WriteDocuments(t *testing.T, docs []model.Document) string {
	t.Helper()
	if docs == nil {
		docs = SampleDocuments()
	}

	dir := t.TempDir()
	for _, doc := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, doc.ID), []byte(doc.Content), 0o600))
	}
	return dir
}

// SearchTestCase represents a test case for single-term search
type SearchTestCase struct {
	Name              string
	Query             string
	ExpectedFound     bool
	ExpectedDocuments []string // Result document IDs in posting order
	ValidateFunc      func(t *testing.T, result services.SearchResult)
}

// RunSearchTests runs a suite of search tests against a searcher
func RunSearchTests(t *testing.T, searcher services.Searcher, tests []SearchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result := searcher.Search(tt.Query)

			assert.Equal(t, tt.ExpectedFound, result.Found, "Found flag should match")

			docs := make([]string, 0, len(result.Results))
			for _, entry := range result.Results {
				docs = append(docs, entry.Document)
			}
			expected := tt.ExpectedDocuments
			if expected == nil {
				expected = []string{}
			}
			assert.Equal(t, expected, docs, "Result documents should match")

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, result)
			}
		})
	}
}
