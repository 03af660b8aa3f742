package crawler

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"docdecl/internal/extractor"
)

var sourceExtensions = []string{".h", ".hh", ".hpp", ".hxx", ".cpp", ".cc", ".cxx"}

// Crawler scans a directory tree for C++ source files and extracts them.
type Crawler struct {
	extractor *extractor.Extractor
	ignored   []string
	jobs      int
}

// NewCrawler creates a crawler. jobs bounds how many files are extracted
// concurrently; zero or negative means one worker per CPU.
func NewCrawler(ext *extractor.Extractor, jobs int) *Crawler {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Crawler{
		extractor: ext,
		ignored:   []string{".git", "build", "cmake-build-debug", "third_party", "vendor"},
		jobs:      jobs,
	}
}

// Ignore adds directory names to skip during the walk.
func (c *Crawler) Ignore(names ...string) {
	c.ignored = append(c.ignored, names...)
}

// ListFiles returns the sorted source files under root, skipping ignored
// directories.
func (c *Crawler) ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if isSourceFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// FileError records a file whose extraction failed and was skipped.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// ScanProject extracts every source file under root, fanning the files out
// across workers. Extraction of one file shares no state with another, so
// the only synchronization is around the callback, which observes results
// in arbitrary order. A file that fails to read or parse does not sink the
// scan; it is skipped and reported in the returned slice.
func (c *Crawler) ScanProject(ctx context.Context, root string, onFile func(*extractor.FileResult)) ([]FileError, error) {
	files, err := c.ListFiles(root)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var skipped []FileError
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs)

	for _, path := range files {
		g.Go(func() error {
			result, err := c.extractor.ExtractFile(gctx, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				skipped = append(skipped, FileError{File: path, Err: err})
				return nil
			}
			onFile(result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return skipped, nil
}

func isSourceFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range sourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
