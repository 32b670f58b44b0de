package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxest/faqdex/internal/core/domain"
)

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked hits", func(t *testing.T) {
		idx := &mockIndex{hits: []domain.SearchHit{
			{DocumentID: "doc-1", Score: 0.92},
			{DocumentID: "doc-2", Score: 0.71},
		}}
		svc := NewSearchService(newMockDocStore(), &mockEmbedding{dims: 4}, idx)

		hits, err := svc.Search(ctx, "how do I reset my password", 5)
		require.NoError(t, err)

		require.Len(t, hits, 2)
		assert.Equal(t, "doc-1", hits[0].DocumentID)
		assert.Equal(t, "doc-2", hits[1].DocumentID)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		svc := NewSearchService(newMockDocStore(), &mockEmbedding{dims: 4}, &mockIndex{})

		hits, err := svc.Search(ctx, "   ", 5)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, hits)
	})

	t.Run("non-positive k falls back to default", func(t *testing.T) {
		hits := make([]domain.SearchHit, domain.DefaultSearchK+3)
		for i := range hits {
			hits[i] = domain.SearchHit{DocumentID: string(rune('a' + i)), Score: 1 - float64(i)/10}
		}
		idx := &mockIndex{hits: hits}
		svc := NewSearchService(newMockDocStore(), &mockEmbedding{dims: 4}, idx)

		got, err := svc.Search(ctx, "query", 0)
		require.NoError(t, err)
		assert.Len(t, got, domain.DefaultSearchK)
	})

	t.Run("embedding failure surfaces", func(t *testing.T) {
		emb := &mockEmbedding{dims: 4, embedErr: domain.ErrEmbeddingFailed}
		svc := NewSearchService(newMockDocStore(), emb, &mockIndex{})

		_, err := svc.Search(ctx, "query", 5)
		assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
	})

	t.Run("index failure surfaces", func(t *testing.T) {
		idx := &mockIndex{searchErr: domain.ErrDimensionMismatch}
		svc := NewSearchService(newMockDocStore(), &mockEmbedding{dims: 4}, idx)

		_, err := svc.Search(ctx, "query", 5)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("bumps usage counters for returned documents", func(t *testing.T) {
		store := newMockDocStore()
		idx := &mockIndex{hits: []domain.SearchHit{
			{DocumentID: "doc-1", Score: 0.9},
			{DocumentID: "doc-2", Score: 0.8},
		}}
		svc := NewSearchService(store, &mockEmbedding{dims: 4}, idx)

		_, err := svc.Search(ctx, "query", 5)
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			return len(store.usageCalls()) == 2
		}, time.Second, 10*time.Millisecond)
		assert.ElementsMatch(t, []string{"doc-1", "doc-2"}, store.usageCalls())
	})

	t.Run("usage counter failure does not affect results", func(t *testing.T) {
		store := newMockDocStore()
		store.incErr = domain.ErrNotFound
		idx := &mockIndex{hits: []domain.SearchHit{{DocumentID: "doc-1", Score: 0.9}}}
		svc := NewSearchService(store, &mockEmbedding{dims: 4}, idx)

		hits, err := svc.Search(ctx, "query", 5)
		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})
}
