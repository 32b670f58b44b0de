package driven

import "context"

// AnswerModel provides language model generation for question answering
// and FAQ extraction. This is an optional service: when nil, search still
// works and ask degrades to returning retrieved sources.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (GPT-4 class models)
type AnswerModel interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the tag of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable and the configured model
	// is available, failing fast with a clear error otherwise.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// TopP is the nucleus sampling cutoff; zero means model default.
	TopP float64
}
