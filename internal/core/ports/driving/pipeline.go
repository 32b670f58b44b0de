package driving

import (
	"context"

	"github.com/foxest/faqdex/internal/core/domain"
)

// IngestService runs the ingestion pipeline:
// file -> text -> chunks -> vectors -> index + store.
type IngestService interface {
	// Ingest processes one file. The result is terminal: stored,
	// skipped (duplicate) or failed (with a reason). The returned error
	// is non-nil only for failures; duplicates are not errors.
	Ingest(ctx context.Context, filePath, fileName string) (domain.IngestResult, error)
}

// SearchService serves top-k similarity search.
type SearchService interface {
	// Search embeds the query and returns ranked document hits.
	// A failed search returns an error, never an empty list that could
	// be mistaken for "no matches".
	Search(ctx context.Context, query string, k int) ([]domain.SearchHit, error)
}

// AnswerService answers questions using retrieved context.
type AnswerService interface {
	// Ask retrieves the top-k documents for the question and asks the
	// language model to answer from their content.
	Ask(ctx context.Context, question string, k int) (*domain.Answer, error)
}

// FAQService generates question/answer pairs from stored documents.
type FAQService interface {
	// GenerateFromDocument produces FAQ pairs from the first maxChunks
	// chunks of the given document.
	GenerateFromDocument(ctx context.Context, documentID string, maxChunks int) ([]domain.FAQPair, error)
}

// DocumentService exposes the stored corpus for inspection.
type DocumentService interface {
	// List returns all stored documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get returns one document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)
}

// Status reports the health and size of the retrieval core.
type Status struct {
	// Documents is the number of stored documents.
	Documents int

	// Vectors is the number of vectors in the similarity index.
	Vectors int

	// Dimensions is the index vector dimension.
	Dimensions int

	// EmbeddingModel is the configured embedding model tag.
	EmbeddingModel string

	// EmbeddingOK reports whether the embedding endpoint answered a ping.
	EmbeddingOK bool

	// LLMModel is the configured generation model tag, if any.
	LLMModel string

	// LLMOK reports whether the generation endpoint answered a ping.
	LLMOK bool
}

// StatusService exposes startup health checks and corpus counters.
type StatusService interface {
	Status(ctx context.Context) (*Status, error)
}
