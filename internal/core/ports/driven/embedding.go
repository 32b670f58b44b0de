package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from VectorIndex which stores and searches
// vectors. EmbeddingService generates vectors; VectorIndex stores them.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one vector per
	// input, order-preserving. Production ingestion always embeds chunks
	// through this call rather than one at a time.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768).
	// This is determined by the model and must match the VectorIndex
	// configuration.
	Dimensions() int

	// ModelName returns the tag of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable and the configured model
	// is actually available. Used at startup to fail fast instead of
	// silently substituting a different model.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
