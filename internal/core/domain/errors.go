package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors and are matched
// with errors.Is at the boundaries.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateDocument indicates a document with the same content
	// hash already exists. Expected and benign: surfaced to callers as
	// a skipped ingestion, never as a failure.
	ErrDuplicateDocument = errors.New("duplicate document")

	// ErrExtractionFailed indicates the file could not be opened or
	// parsed. Permanent; never retried.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrNoExtractableText indicates extraction succeeded but produced
	// no usable text. Permanent; never retried.
	ErrNoExtractableText = errors.New("no extractable text")

	// ErrEmbeddingFailed indicates the embedding model is unavailable or
	// misconfigured. Transient; the task queue may retry the whole
	// ingestion. The pipeline never substitutes zero vectors.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrDimensionMismatch indicates a vector does not match the index
	// dimension. A programmer or configuration error; never coerced.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrIndexCorrupt indicates the persisted index could not be loaded.
	// Recovered locally by rebuilding an empty index; never crashes.
	ErrIndexCorrupt = errors.New("index file corrupt")

	// ErrModelUnavailable indicates the configured model is not served
	// by the inference endpoint. Startup health checks fail fast on it
	// rather than silently substituting a different model.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrModelMismatch indicates the document corpus was embedded with a
	// different model than the one configured. Mixing vectors from two
	// models in one index is refused at ingestion time.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// ErrMalformedModelOutput indicates the language model returned text
	// that could not be parsed into the expected structure. Distinct from
	// a legitimately empty result.
	ErrMalformedModelOutput = errors.New("malformed model output")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueueClosed indicates the ingest queue is shutting down and no
	// longer accepts work.
	ErrQueueClosed = errors.New("ingest queue closed")
)
