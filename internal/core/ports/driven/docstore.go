package driven

import (
	"context"

	"github.com/foxest/faqdex/internal/core/domain"
)

// DocumentStore persists ingested documents.
// Backed by SQLite for durable metadata storage.
type DocumentStore interface {
	// Save stores a new document. Returns domain.ErrDuplicateDocument
	// when the content hash is already present; callers are expected to
	// have checked FindByHash first, this is defence in depth.
	Save(ctx context.Context, doc *domain.Document) error

	// FindByHash retrieves a document by content hash.
	// Returns domain.ErrNotFound when no document matches.
	FindByHash(ctx context.Context, hash string) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document. Used by ingestion rollback.
	Delete(ctx context.Context, id string) error

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// DistinctModels returns the embedding model tags present in the
	// corpus. Used to refuse mixing vectors from different models in
	// one index.
	DistinctModels(ctx context.Context) ([]string, error)

	// IncrementUsage bumps a document's usage counter. Best-effort:
	// it is a popularity hint, lost updates under race are tolerable.
	IncrementUsage(ctx context.Context, id string) error

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying database.
	Close() error
}
