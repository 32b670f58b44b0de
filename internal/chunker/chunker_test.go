package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxest/faqdex/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		c := New()

		assert.Equal(t, DefaultChunkSize, c.ChunkSize())
		assert.Equal(t, DefaultChunkOverlap, c.Overlap())
	})

	t.Run("applies options", func(t *testing.T) {
		c := New(WithChunkSize(500), WithOverlap(50))

		assert.Equal(t, 500, c.ChunkSize())
		assert.Equal(t, 50, c.Overlap())
	})

	t.Run("clamps overlap exceeding chunk size", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(100))

		assert.Equal(t, 25, c.Overlap())
	})

	t.Run("ignores non-positive size", func(t *testing.T) {
		c := New(WithChunkSize(0))

		assert.Equal(t, DefaultChunkSize, c.ChunkSize())
	})
}

func TestSplit(t *testing.T) {
	t.Run("empty text yields no chunks", func(t *testing.T) {
		c := New()

		assert.Empty(t, c.Split(""))
	})

	t.Run("short text yields one whole chunk", func(t *testing.T) {
		c := New(WithChunkSize(500), WithOverlap(50))

		chunks := c.Split("short text")

		require.Len(t, chunks, 1)
		assert.Equal(t, "short text", chunks[0])
	})

	t.Run("1200 characters at 500/50 yields at least two chunks", func(t *testing.T) {
		c := New(WithChunkSize(500), WithOverlap(50))
		text := strings.Repeat("a", 1200)

		chunks := c.Split(text)

		assert.GreaterOrEqual(t, len(chunks), 2)
	})

	t.Run("no chunk exceeds the window size", func(t *testing.T) {
		c := New(WithChunkSize(500), WithOverlap(50))
		text := strings.Repeat("word. ", 700)

		for _, chunk := range c.Split(text) {
			assert.LessOrEqual(t, len(chunk), 500)
		}
	})

	t.Run("chunks cover the whole text", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(20))
		text := strings.Repeat("b", 1000)

		chunks := c.Split(text)
		require.NotEmpty(t, chunks)

		covered := 0
		for i, chunk := range chunks {
			if i > 0 {
				covered -= c.Overlap()
			}
			if covered < 0 {
				covered = 0
			}
			covered += len(chunk)
		}
		assert.GreaterOrEqual(t, covered, len(text))

		// Final chunk reaches the end of the text.
		last := chunks[len(chunks)-1]
		assert.True(t, strings.HasSuffix(text, last))
	})

	t.Run("consecutive chunks share the overlap", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(20))
		text := strings.Repeat("c", 300)

		chunks := c.Split(text)
		require.Greater(t, len(chunks), 1)

		for i := 1; i < len(chunks); i++ {
			tail := chunks[i-1][len(chunks[i-1])-c.Overlap():]
			assert.True(t, strings.HasPrefix(chunks[i], tail))
		}
	})

	t.Run("prefers sentence boundary past the midpoint", func(t *testing.T) {
		// One sentence ending at position 80 of a 100-char window.
		sentence := strings.Repeat("x", 79) + "."
		text := sentence + strings.Repeat("y", 200)
		c := New(WithChunkSize(100), WithOverlap(10))

		chunks := c.Split(text)

		require.NotEmpty(t, chunks)
		assert.Equal(t, sentence, chunks[0])
	})

	t.Run("ignores sentence boundary before the midpoint", func(t *testing.T) {
		// Terminator at position 10 is before the midpoint of 100.
		text := strings.Repeat("x", 9) + "." + strings.Repeat("y", 300)
		c := New(WithChunkSize(100), WithOverlap(10))

		chunks := c.Split(text)

		require.NotEmpty(t, chunks)
		assert.Len(t, chunks[0], 100)
	})

	t.Run("never splits a multi-byte rune", func(t *testing.T) {
		// Three-byte runes guarantee the 100-byte window edge lands
		// mid-rune somewhere in the text.
		text := strings.Repeat("日本語テキスト", 50)
		c := New(WithChunkSize(100), WithOverlap(10))

		chunks := c.Split(text)

		require.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.True(t, utf8.ValidString(chunk))
		}
		assert.True(t, strings.HasSuffix(text, chunks[len(chunks)-1]))
	})

	t.Run("window edge backs off to a rune boundary", func(t *testing.T) {
		// "é" is two bytes, so a 5-byte window over repeated "é"
		// always lands between its bytes.
		text := strings.Repeat("é", 20)
		c := New(WithChunkSize(5), WithOverlap(1))

		for _, chunk := range c.Split(text) {
			assert.True(t, utf8.ValidString(chunk))
		}
	})

	t.Run("cuts at newline like a sentence end", func(t *testing.T) {
		text := strings.Repeat("x", 70) + "\n" + strings.Repeat("y", 300)
		c := New(WithChunkSize(100), WithOverlap(10))

		chunks := c.Split(text)

		require.NotEmpty(t, chunks)
		assert.Equal(t, strings.Repeat("x", 70)+"\n", chunks[0])
	})
}

func TestChunks(t *testing.T) {
	t.Run("tags chunks with document id and position", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(20))
		doc := &domain.Document{
			ID:      "doc-1",
			Content: strings.Repeat("z", 250),
		}

		chunks := c.Chunks(doc)

		require.Greater(t, len(chunks), 1)
		for i, chunk := range chunks {
			assert.Equal(t, "doc-1", chunk.DocumentID)
			assert.Equal(t, i, chunk.Position)
			assert.NotEmpty(t, chunk.Text)
		}
	})

	t.Run("empty document yields no chunks", func(t *testing.T) {
		c := New()

		assert.Empty(t, c.Chunks(&domain.Document{ID: "doc-1"}))
	})
}
