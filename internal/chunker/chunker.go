// Package chunker splits document text into overlapping fixed-size
// windows suitable for embedding.
package chunker

import (
	"unicode/utf8"

	"github.com/foxest/faqdex/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// Chunker splits text into fixed-size chunks with overlap. Chunk
// boundaries prefer the last sentence terminator or newline inside the
// window when that cut point lies past the window's midpoint, so chunks
// rarely end mid-sentence while never shrinking below half the window.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured window size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split divides text into overlapping chunks. Empty text yields nil.
// Text shorter than the chunk size yields exactly one chunk equal to
// the whole text.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	textLen := len(text)

	estimated := textLen/(c.chunkSize-c.overlap) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < textLen {
		end := start + c.chunkSize
		if end >= textLen {
			chunks = append(chunks, text[start:textLen])
			break
		}

		// The window edge is a byte offset and may land inside a
		// multi-byte rune. Back it off so chunks stay valid UTF-8.
		end = runeStart(text, end)
		if end <= start {
			_, size := utf8.DecodeRuneInString(text[start:])
			end = start + size
		}

		// Prefer to cut at the end of a sentence, but only when the cut
		// point is past the window midpoint so a chunk never shrinks
		// below half the window.
		if cut := lastBoundary(text[start:end]); cut+1 > c.chunkSize/2 {
			end = start + cut + 1
		}

		chunks = append(chunks, text[start:end])

		next := runeStart(text, end-c.overlap)
		if next <= start {
			// Progress guard for degenerate overlap configurations.
			next = runeStart(text, start+c.chunkSize-c.overlap)
			if next <= start {
				next = end
			}
		}
		start = next
	}

	return chunks
}

// Chunks splits a document's content and tags each chunk with the
// parent document ID and its ordinal position.
func (c *Chunker) Chunks(doc *domain.Document) []domain.Chunk {
	parts := c.Split(doc.Content)
	chunks := make([]domain.Chunk, len(parts))
	for i, text := range parts {
		chunks[i] = domain.Chunk{
			Text:       text,
			DocumentID: doc.ID,
			Position:   i,
		}
	}
	return chunks
}

// runeStart backs the byte offset i off to the start of the rune it
// falls inside. Offsets outside the string clamp to its ends.
func runeStart(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// lastBoundary returns the index of the last sentence terminator or
// newline in s, or -1 when there is none.
func lastBoundary(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '.', '!', '?', '\n':
			return i
		}
	}
	return -1
}
