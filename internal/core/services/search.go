package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/foxest/faqdex/internal/core/domain"
	"github.com/foxest/faqdex/internal/core/ports/driven"
	"github.com/foxest/faqdex/internal/core/ports/driving"
	"github.com/foxest/faqdex/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers similarity queries against the vector index and
// tracks per-document usage.
type SearchService struct {
	docStore  driven.DocumentStore
	embedding driven.EmbeddingService
	index     driven.VectorIndex
	defaultK  int
}

// NewSearchService creates a new search service.
func NewSearchService(
	docStore driven.DocumentStore,
	embedding driven.EmbeddingService,
	index driven.VectorIndex,
) *SearchService {
	return &SearchService{
		docStore:  docStore,
		embedding: embedding,
		index:     index,
		defaultK:  domain.DefaultSearchK,
	}
}

// SetDefaultK overrides the result count used when callers pass k <= 0.
func (s *SearchService) SetDefaultK(k int) {
	if k > 0 {
		s.defaultK = k
	}
}

// Search embeds the query and returns up to k distinct documents ranked by
// cosine similarity. An empty or whitespace-only query is rejected with
// ErrInvalidInput. Usage counters for returned documents are bumped in the
// background so a slow store never delays results.
func (s *SearchService) Search(ctx context.Context, query string, k int) ([]domain.SearchHit, error) {
	logger.Section("Search")
	logger.Debug("Query: %q k=%d", query, k)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if k <= 0 {
		k = s.defaultK
	}

	vector, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Found %d hits", len(hits))

	if len(hits) > 0 {
		go s.recordUsage(hits)
	}
	return hits, nil
}

// recordUsage bumps usage counters outside the request path. Failures are
// logged, never surfaced.
func (s *SearchService) recordUsage(hits []domain.SearchHit) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, hit := range hits {
		if err := s.docStore.IncrementUsage(ctx, hit.DocumentID); err != nil {
			logger.Warn("usage counter for %s not updated: %v", hit.DocumentID, err)
		}
	}
}
