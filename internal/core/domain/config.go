package domain

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultEmbeddingBaseURL = "http://localhost:11434"
	DefaultEmbeddingModel   = "nomic-embed-text"
	DefaultEmbeddingDims    = 768
	DefaultEmbeddingTimeout = 30 * time.Second

	DefaultLLMBaseURL = "http://localhost:11434"
	DefaultLLMModel   = "llama3.2"
	DefaultLLMTimeout = 60 * time.Second

	// DefaultChunkSize and DefaultChunkOverlap follow the production
	// ingestion profile. An alternate 500/50 profile is supported
	// through configuration.
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200

	DefaultSearchK = 5
)

// Config holds the runtime configuration for the retrieval core.
// It is supplied by the configuration collaborator at startup.
type Config struct {
	// DataDir is the root directory for persistent state
	// (SQLite database and the similarity index file).
	DataDir string

	// UploadsDir is the directory watched for incoming PDF files.
	UploadsDir string

	// IndexPath is the similarity index file. Defaults to
	// DataDir/vectors.idx when empty.
	IndexPath string

	// EmbeddingBaseURL is the embedding endpoint (Ollama API).
	EmbeddingBaseURL string

	// EmbeddingModel is the embedding model tag. Recorded on every
	// ingested document; a mismatch marks a stale index.
	EmbeddingModel string

	// EmbeddingDims is the embedding vector size, fixed per model.
	EmbeddingDims int

	// EmbeddingTimeout bounds a single embedding request.
	EmbeddingTimeout time.Duration

	// LLMBaseURL is the answer-generation endpoint (Ollama API).
	LLMBaseURL string

	// LLMModel is the generation model tag. No fallback probing: if the
	// configured model is unavailable, startup fails with a clear error.
	LLMModel string

	// LLMTimeout bounds a single generation request.
	LLMTimeout time.Duration

	// ChunkSize is the maximum chunk length in bytes.
	ChunkSize int

	// ChunkOverlap is the number of bytes shared by consecutive chunks.
	ChunkOverlap int

	// SearchK is the default number of search results.
	SearchK int
}

// DefaultConfig returns a Config populated with defaults.
// DataDir and UploadsDir are left for the caller to resolve.
func DefaultConfig() Config {
	return Config{
		EmbeddingBaseURL: DefaultEmbeddingBaseURL,
		EmbeddingModel:   DefaultEmbeddingModel,
		EmbeddingDims:    DefaultEmbeddingDims,
		EmbeddingTimeout: DefaultEmbeddingTimeout,
		LLMBaseURL:       DefaultLLMBaseURL,
		LLMModel:         DefaultLLMModel,
		LLMTimeout:       DefaultLLMTimeout,
		ChunkSize:        DefaultChunkSize,
		ChunkOverlap:     DefaultChunkOverlap,
		SearchK:          DefaultSearchK,
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidInput)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap must satisfy 0 <= overlap < chunk size", ErrInvalidInput)
	}
	if c.EmbeddingDims <= 0 {
		return fmt.Errorf("%w: embedding dimensions must be positive", ErrInvalidInput)
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("%w: embedding model must be set", ErrInvalidInput)
	}
	if c.SearchK <= 0 {
		return fmt.Errorf("%w: search k must be positive", ErrInvalidInput)
	}
	return nil
}
