package driven

import (
	"context"

	"github.com/foxest/faqdex/internal/core/domain"
)

// VectorIndex provides similarity search over embedded chunks.
// It is a process-wide resource: created once at startup, kept resident,
// mutated only by append, and persisted to disk after every mutation.
//
// Identity is per document: position i of the internal identity array
// holds the parent document ID of the i-th inserted vector. The identity
// array and the vector count advance together atomically; that lockstep
// is the most important invariant of the whole core.
type VectorIndex interface {
	// Add appends vectors with their associated document IDs and
	// persists the index. Vectors and docIDs must have equal length and
	// every vector must match the index dimension
	// (domain.ErrDimensionMismatch otherwise). Concurrent Add calls are
	// serialised; searches never observe a partial append.
	Add(ctx context.Context, vectors [][]float32, docIDs []string) error

	// Search returns up to k hits, descending by score, deduplicated to
	// document granularity (each document's best chunk score wins).
	// Ties break by insertion order, earlier wins. An empty index
	// returns an empty result, never an error.
	Search(ctx context.Context, query []float32, k int) ([]domain.SearchHit, error)

	// Len returns the number of stored vectors.
	Len() int

	// Dimensions returns the fixed vector dimension.
	Dimensions() int

	// Close persists any pending state and releases resources.
	Close() error
}
