package storage

import (
	"context"

	"docdecl/internal/extractor"
)

// Store defines operations for persisting extraction results.
type Store interface {
	// SaveResult replaces the stored snapshot of a single file.
	SaveResult(ctx context.Context, r *extractor.FileResult) error

	// Files lists every file with a stored snapshot, sorted by path.
	Files(ctx context.Context) ([]string, error)

	// LoadResult rebuilds the extraction result for a file.
	LoadResult(ctx context.Context, file string) (*extractor.FileResult, error)

	Close() error
}
