package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type indexCall struct {
	id   string
	text string
}

// recordingIndexer captures IndexDocument calls in order.
type recordingIndexer struct {
	calls []indexCall
	err   error
}

func (r *recordingIndexer) IndexDocument(documentID, text string) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, indexCall{id: documentID, text: text})
	return nil
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc2.txt", []byte("A cat and a dog."))
	writeFile(t, dir, "doc1.txt", []byte("The cat sat on the mat."))
	writeFile(t, dir, "notes.md", []byte("ignored"))
	writeFile(t, dir, "UPPER.TXT", []byte("Upper case extension"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	idx := &recordingIndexer{}
	result, err := LoadDirectory(context.Background(), dir, Options{Extensions: []string{".txt"}}, idx)
	require.NoError(t, err)

	require.Len(t, idx.calls, 3)
	assert.Equal(t, "UPPER.TXT", idx.calls[0].id)
	assert.Equal(t, indexCall{id: "doc1.txt", text: "The cat sat on the mat."}, idx.calls[1])
	assert.Equal(t, "doc2.txt", idx.calls[2].id)
	assert.Len(t, result.Documents, 3)
	assert.Empty(t, result.Skipped)
}

func TestLoadDirectory_AllFilesWhenNoExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("one"))
	writeFile(t, dir, "b.md", []byte("two"))

	idx := &recordingIndexer{}
	_, err := LoadDirectory(context.Background(), dir, Options{}, idx)
	require.NoError(t, err)
	assert.Len(t, idx.calls, 2)
}

func TestLoadDirectory_ExtensionCaseIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("one"))
	writeFile(t, dir, "B.Txt", []byte("two"))

	idx := &recordingIndexer{}
	_, err := LoadDirectory(context.Background(), dir, Options{Extensions: []string{".TXT"}}, idx)
	require.NoError(t, err)
	require.Len(t, idx.calls, 2)
	assert.Equal(t, "B.Txt", idx.calls[0].id)
	assert.Equal(t, "a.txt", idx.calls[1].id)
}

func TestLoadDirectory_FollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "outside.txt")
	require.NoError(t, os.WriteFile(target, []byte("linked cat"), 0o600))
	if err := os.Symlink(target, filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "dangling.txt")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "dirlink.txt")))

	idx := &recordingIndexer{}
	result, err := LoadDirectory(context.Background(), dir, Options{Extensions: []string{".txt"}}, idx)
	require.NoError(t, err)
	require.Len(t, idx.calls, 1)
	assert.Equal(t, indexCall{id: "link.txt", text: "linked cat"}, idx.calls[0])
	assert.Len(t, result.Documents, 1)
}

func TestLoadDirectory_MissingDirIsCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "documents")

	idx := &recordingIndexer{}
	result, err := LoadDirectory(context.Background(), dir, Options{}, idx)
	require.NoError(t, err)
	assert.Empty(t, result.Documents)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadDirectory_SkipsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "binary.txt", []byte{0xff, 0xfe, 0x00, 0x81})
	writeFile(t, dir, "good.txt", []byte("fine"))

	idx := &recordingIndexer{}
	result, err := LoadDirectory(context.Background(), dir, Options{}, idx)
	require.NoError(t, err)
	assert.Equal(t, []string{"binary.txt"}, result.Skipped)
	require.Len(t, idx.calls, 1)
	assert.Equal(t, "good.txt", idx.calls[0].id)
}

func TestLoadDirectory_IndexerError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("one"))

	boom := errors.New("boom")
	_, err := LoadDirectory(context.Background(), dir, Options{}, &recordingIndexer{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestLoadDirectory_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("one"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := &recordingIndexer{}
	_, err := LoadDirectory(ctx, dir, Options{}, idx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, idx.calls)
}
