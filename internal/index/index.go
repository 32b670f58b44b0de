// Package index provides the in-process similarity index over embedding
// vectors: incremental append, top-k cosine search and disk persistence.
package index

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/foxest/faqdex/internal/core/domain"
	"github.com/foxest/faqdex/internal/core/ports/driven"
	"github.com/foxest/faqdex/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a disk-persisted vector index with per-document identity.
//
// Position i of docIDs holds the parent document ID of the i-th vector;
// the two slices advance together under the write lock and are never
// reordered or deleted in place. Searches run under the read lock, so a
// reader can never observe a partially appended batch.
//
// Vectors are L2-normalised on insert and scored by dot product, which
// equals cosine similarity. The corpus sizes this index serves (hundreds
// to low thousands of chunks) make an exact scan both simpler and better
// on recall than a tuned approximate structure.
type Index struct {
	mu      sync.RWMutex
	path    string
	dims    int
	vectors [][]float32
	docIDs  []string
}

// persisted is the on-disk representation.
type persisted struct {
	Dims    int
	DocIDs  []string
	Vectors [][]float32
}

// Open loads the index at path, or creates an empty one when the file
// does not exist. A corrupt or mismatched file is treated as data loss:
// the loss is logged and an empty index is returned rather than
// crashing the process.
func Open(path string, dims int) (*Index, error) {
	if path == "" {
		return nil, errors.New("index: path cannot be empty")
	}
	if dims <= 0 {
		return nil, errors.New("index: dimension must be positive")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("index: creating data directory: %w", err)
	}

	ix := &Index{path: path, dims: dims}

	stored, err := load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run, start empty.
	case err != nil:
		logger.Warn("index at %s unreadable, rebuilding empty (stored vectors are lost): %v", path, err)
	case stored.Dims != dims:
		logger.Warn("index at %s has dimension %d but %d is configured, rebuilding empty", path, stored.Dims, dims)
	default:
		ix.vectors = stored.Vectors
		ix.docIDs = stored.DocIDs
	}

	return ix, nil
}

// load reads and validates a persisted index file.
func load(path string) (*persisted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var stored persisted
	if err := gob.NewDecoder(f).Decode(&stored); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexCorrupt, err)
	}

	if len(stored.DocIDs) != len(stored.Vectors) {
		return nil, fmt.Errorf("%w: %d ids for %d vectors", domain.ErrIndexCorrupt,
			len(stored.DocIDs), len(stored.Vectors))
	}
	for _, v := range stored.Vectors {
		if len(v) != stored.Dims {
			return nil, fmt.Errorf("%w: stored vector has dimension %d, want %d",
				domain.ErrIndexCorrupt, len(v), stored.Dims)
		}
	}

	return &stored, nil
}

// Add appends vectors with their document IDs and persists the index.
// The in-memory append and the on-disk state move together: if the save
// fails, the append is rolled back and the error returned, so memory
// never silently diverges from what the next load would see.
func (ix *Index) Add(ctx context.Context, vectors [][]float32, docIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(vectors) != len(docIDs) {
		return fmt.Errorf("index: %d vectors for %d ids", len(vectors), len(docIDs))
	}
	if len(vectors) == 0 {
		return nil
	}

	normalised := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != ix.dims {
			return fmt.Errorf("%w: got %d, index has %d", domain.ErrDimensionMismatch, len(v), ix.dims)
		}
		normalised[i] = normalise(v)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	prevLen := len(ix.vectors)
	ix.vectors = append(ix.vectors, normalised...)
	ix.docIDs = append(ix.docIDs, docIDs...)

	if err := ix.persistLocked(); err != nil {
		ix.vectors = ix.vectors[:prevLen]
		ix.docIDs = ix.docIDs[:prevLen]
		return fmt.Errorf("index: persisting: %w", err)
	}

	return nil
}

// persistLocked writes the index to a temporary file and atomically
// renames it over the target path. Callers must hold the write lock.
func (ix *Index) persistLocked() error {
	tmp := ix.path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	stored := persisted{
		Dims:    ix.dims,
		DocIDs:  ix.docIDs,
		Vectors: ix.vectors,
	}
	if err := gob.NewEncoder(f).Encode(&stored); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, ix.path)
}

// Search returns up to k hits descending by score, deduplicated to
// document granularity. Each document keeps its best chunk score; ties
// break by insertion order with the earlier insertion winning. An empty
// index returns an empty result.
func (ix *Index) Search(ctx context.Context, query []float32, k int) ([]domain.SearchHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(query) != ix.dims {
		return nil, fmt.Errorf("%w: query has %d, index has %d", domain.ErrDimensionMismatch, len(query), ix.dims)
	}
	if k <= 0 {
		return []domain.SearchHit{}, nil
	}

	q := normalise(query)

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	type best struct {
		score float64
		pos   int
	}
	perDoc := make(map[string]best, len(ix.docIDs))
	order := make([]string, 0, len(ix.docIDs))

	for i, v := range ix.vectors {
		score := dot(q, v)
		b, seen := perDoc[ix.docIDs[i]]
		if !seen {
			perDoc[ix.docIDs[i]] = best{score: score, pos: i}
			order = append(order, ix.docIDs[i])
			continue
		}
		// Strictly greater keeps the earlier insertion on tied scores.
		if score > b.score {
			perDoc[ix.docIDs[i]] = best{score: score, pos: b.pos}
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := perDoc[order[a]], perDoc[order[b]]
		if sa.score != sb.score {
			return sa.score > sb.score
		}
		return sa.pos < sb.pos
	})

	if k > len(order) {
		k = len(order)
	}
	hits := make([]domain.SearchHit, 0, k)
	for _, id := range order[:k] {
		hits = append(hits, domain.SearchHit{DocumentID: id, Score: perDoc[id].score})
	}

	return hits, nil
}

// Len returns the number of stored vectors.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// Dimensions returns the fixed vector dimension.
func (ix *Index) Dimensions() int {
	return ix.dims
}

// Path returns the index file path.
func (ix *Index) Path() string {
	return ix.path
}

// Close releases resources. State is persisted after every Add, so
// there is nothing pending to flush.
func (ix *Index) Close() error {
	return nil
}

// normalise returns an L2-normalised copy of v. A zero vector is
// returned unchanged.
func normalise(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		out := make([]float32, len(v))
		copy(out, v)
		return out
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
