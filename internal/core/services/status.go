package services

import (
	"context"
	"fmt"

	"github.com/foxest/faqdex/internal/core/ports/driven"
	"github.com/foxest/faqdex/internal/core/ports/driving"
	"github.com/foxest/faqdex/internal/logger"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService reports the health of the stores and model backends.
type StatusService struct {
	docStore  driven.DocumentStore
	index     driven.VectorIndex
	embedding driven.EmbeddingService
	model     driven.AnswerModel
}

// NewStatusService creates a new status service.
func NewStatusService(
	docStore driven.DocumentStore,
	index driven.VectorIndex,
	embedding driven.EmbeddingService,
	model driven.AnswerModel,
) *StatusService {
	return &StatusService{
		docStore:  docStore,
		index:     index,
		embedding: embedding,
		model:     model,
	}
}

// Status gathers store counts and probes both model backends. Probe failures
// are reflected in the report, not returned as errors, so status still works
// when a backend is down.
func (s *StatusService) Status(ctx context.Context) (*driving.Status, error) {
	count, err := s.docStore.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	st := &driving.Status{
		Documents:      count,
		Vectors:        s.index.Len(),
		Dimensions:     s.index.Dimensions(),
		EmbeddingModel: s.embedding.ModelName(),
		LLMModel:       s.model.ModelName(),
	}

	if err := s.embedding.Ping(ctx); err != nil {
		logger.Debug("Embedding backend probe failed: %v", err)
	} else {
		st.EmbeddingOK = true
	}
	if err := s.model.Ping(ctx); err != nil {
		logger.Debug("Generation backend probe failed: %v", err)
	} else {
		st.LLMOK = true
	}

	return st, nil
}
