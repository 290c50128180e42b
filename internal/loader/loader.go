// Package loader feeds documents from a directory into an indexer.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-text-indexer/internal/logger"
	"github.com/gcbaptista/go-text-indexer/model"
	"github.com/gcbaptista/go-text-indexer/services"
)

const (
	dirPerm        = 0o755
	maxConcurrency = 8
)

// Options controls which files are loaded.
type Options struct {
	Extensions []string // Extensions including the dot, matched case-insensitively; empty loads every regular file
}

// Result reports what a load did.
type Result struct {
	Documents []model.Document // Indexed documents in indexing order
	Skipped   []string         // Files rejected because they are not valid UTF-8
	Elapsed   time.Duration
}

// LoadDirectory reads every matching regular file in dir and indexes it.
// Files are read concurrently but indexed one at a time in filename order,
// so posting lists are deterministic. A missing directory is created and
// yields an empty result.
func LoadDirectory(ctx context.Context, dir string, opts Options, indexer services.Indexer) (Result, error) {
	start := time.Now()
	log := logger.WithComponent("loader")

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		log.Warn("documents directory not found, creating it", "dir", dir)
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return Result{}, fmt.Errorf("failed to create documents directory %s: %w", dir, err)
		}
		return Result{Elapsed: time.Since(start)}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to read documents directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !isRegularFile(dir, entry) || !matches(entry.Name(), opts.Extensions) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)

	contents := make([][]byte, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304 -- name comes from ReadDir of the configured directory
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Documents: make([]model.Document, 0, len(names))}
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !utf8.Valid(contents[i]) {
			log.Warn("skipping file that is not valid UTF-8", "file", name)
			result.Skipped = append(result.Skipped, name)
			continue
		}
		doc := model.Document{ID: name, Content: string(contents[i])}
		if err := indexer.IndexDocument(doc.ID, doc.Content); err != nil {
			return result, err
		}
		result.Documents = append(result.Documents, doc)
	}
	result.Elapsed = time.Since(start)

	log.Info("documents loaded",
		"dir", dir,
		"documents", len(result.Documents),
		"skipped", len(result.Skipped),
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// isRegularFile accepts regular files and symlinks that resolve to one.
func isRegularFile(dir string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

func matches(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	return slices.ContainsFunc(extensions, func(want string) bool {
		return strings.EqualFold(want, ext)
	})
}
