package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foxest/faqdex/internal/chunker"
	"github.com/foxest/faqdex/internal/core/domain"
	"github.com/foxest/faqdex/internal/core/ports/driven"
	"github.com/foxest/faqdex/internal/core/ports/driving"
	"github.com/foxest/faqdex/internal/extractor"
	"github.com/foxest/faqdex/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the document ingestion pipeline: hash, deduplicate,
// extract, chunk, embed and index.
type IngestService struct {
	docStore  driven.DocumentStore
	extractor driven.Extractor
	embedding driven.EmbeddingService
	index     driven.VectorIndex
	chunker   *chunker.Chunker
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	docStore driven.DocumentStore,
	extractor driven.Extractor,
	embedding driven.EmbeddingService,
	index driven.VectorIndex,
	ch *chunker.Chunker,
) *IngestService {
	return &IngestService{
		docStore:  docStore,
		extractor: extractor,
		embedding: embedding,
		index:     index,
		chunker:   ch,
	}
}

// Ingest processes a single file through the full pipeline. A file whose
// content hash is already stored is skipped, not re-embedded. A file that
// yields no extractable text is recorded as failed without a stored row.
func (s *IngestService) Ingest(ctx context.Context, filePath, fileName string) (domain.IngestResult, error) {
	logger.Section("Ingest")
	logger.Debug("File: %s", filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("read file: %w", err)
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.docStore.FindByHash(ctx, hash)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.IngestResult{}, fmt.Errorf("dedup check: %w", err)
	}
	if existing != nil {
		logger.Info("Skipping %s: identical content already stored as %s", fileName, existing.ID)
		return domain.IngestResult{
			Status:     domain.IngestSkipped,
			DocumentID: existing.ID,
			Reason:     "duplicate content",
		}, nil
	}

	if err := s.checkModelTag(ctx); err != nil {
		return domain.IngestResult{
			Status: domain.IngestFailed,
			Reason: err.Error(),
		}, err
	}

	pages, err := s.extractor.Extract(ctx, filePath)
	if err != nil {
		return domain.IngestResult{
			Status: domain.IngestFailed,
			Reason: err.Error(),
		}, fmt.Errorf("extract: %w", err)
	}

	text := extractor.Join(pages)
	if strings.TrimSpace(text) == "" {
		logger.Warn("No extractable text in %s", fileName)
		return domain.IngestResult{
			Status: domain.IngestFailed,
			Reason: "no extractable text",
		}, domain.ErrNoExtractableText
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:             uuid.NewString(),
		FileName:       fileName,
		ContentHash:    hash,
		Content:        text,
		EmbeddingModel: s.embedding.ModelName(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.docStore.Save(ctx, doc); err != nil {
		if errors.Is(err, domain.ErrDuplicateDocument) {
			// Raced with a concurrent ingest of the same content. Report
			// the winner's document ID like the dedup check above does.
			result := domain.IngestResult{
				Status: domain.IngestSkipped,
				Reason: "duplicate content",
			}
			if existing, findErr := s.docStore.FindByHash(ctx, hash); findErr == nil && existing != nil {
				result.DocumentID = existing.ID
			}
			return result, nil
		}
		return domain.IngestResult{}, fmt.Errorf("save document: %w", err)
	}

	chunks := s.chunker.Chunks(doc)
	texts := make([]string, len(chunks))
	docIDs := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
		docIDs[i] = c.DocumentID
	}

	vectors, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		s.rollback(ctx, doc.ID)
		return domain.IngestResult{
			Status: domain.IngestFailed,
			Reason: err.Error(),
		}, fmt.Errorf("embed %d chunks: %w", len(chunks), err)
	}

	if err := s.index.Add(ctx, vectors, docIDs); err != nil {
		s.rollback(ctx, doc.ID)
		return domain.IngestResult{
			Status: domain.IngestFailed,
			Reason: err.Error(),
		}, fmt.Errorf("index %d vectors: %w", len(vectors), err)
	}

	logger.Info("Stored %s as %s (%d chunks)", fileName, doc.ID, len(chunks))
	return domain.IngestResult{
		Status:     domain.IngestStored,
		DocumentID: doc.ID,
	}, nil
}

// checkModelTag refuses to mix vectors from different embedding models in
// one index. The index has no per-vector model record, so the corpus must
// stay homogeneous.
func (s *IngestService) checkModelTag(ctx context.Context) error {
	models, err := s.docStore.DistinctModels(ctx)
	if err != nil {
		return fmt.Errorf("check corpus models: %w", err)
	}
	current := s.embedding.ModelName()
	for _, model := range models {
		if model != current {
			return fmt.Errorf("%w: corpus embedded with %q, configured model is %q",
				domain.ErrModelMismatch, model, current)
		}
	}
	return nil
}

// rollback removes the document row after a downstream pipeline failure so
// the store never references content absent from the index.
func (s *IngestService) rollback(ctx context.Context, docID string) {
	if err := s.docStore.Delete(ctx, docID); err != nil {
		logger.Error("Rollback of document %s failed: %v", docID, err)
	}
}
