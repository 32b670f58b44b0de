package domain

import "time"

// Document represents an ingested file with its extracted text.
// It is created exactly once per distinct content hash and is immutable
// after creation except for the usage counter.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// FileName is the original upload name, kept for display only.
	FileName string

	// ContentHash is the sha256 digest of the file bytes.
	// It carries a unique constraint and is the dedup key.
	ContentHash string

	// Content is the full extracted text.
	Content string

	// EmbeddingModel is the tag of the model used to embed this
	// document's chunks. A mismatch against the running configuration
	// signals a stale index.
	EmbeddingModel string

	// UsageCount is incremented every time this document is returned
	// by a search. Monotonically non-decreasing, best-effort.
	UsageCount int64

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last touched.
	UpdatedAt time.Time
}

// Chunk is a bounded slice of a document's content, sized for embedding.
// Chunks are ephemeral: they are recomputed from Document.Content and
// never persisted on their own.
type Chunk struct {
	// Text is a substring of the parent document's content.
	Text string

	// DocumentID links back to the parent Document.
	DocumentID string

	// Position is the ordinal position within the document.
	Position int
}

// SearchHit is a single ranked result from a similarity search.
type SearchHit struct {
	// DocumentID identifies the matched document.
	DocumentID string `json:"document_id"`

	// Score is the similarity score (1 - distance); larger is more similar.
	Score float64 `json:"score"`
}

// Answer is the output of the question-answering pipeline.
type Answer struct {
	// Question is the user's question as asked.
	Question string `json:"question"`

	// Text is the generated answer.
	Text string `json:"answer"`

	// Sources are the retrieved documents the answer was grounded on.
	Sources []SearchHit `json:"sources"`
}

// FAQPair is a generated question/answer pair.
type FAQPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
