package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowChunker(t *testing.T) {
	t.Run("Valid chunking with sentence boundaries", func(t *testing.T) {
		chunker := WindowChunker(50, 10)
		text := "This is sentence one. This is sentence two. This is sentence three. This is sentence four."

		chunks, err := chunker(text)

		require.NoError(t, err)
		assert.Greater(t, len(chunks), 1, "Expected text to be split into multiple chunks")

		for _, chunk := range chunks {
			assert.NotEmpty(t, chunk.Content)
			assert.GreaterOrEqual(t, chunk.StartPos, 0)
			assert.Greater(t, chunk.EndPos, chunk.StartPos)
		}
	})

	t.Run("Empty text yields empty sequence", func(t *testing.T) {
		chunker := WindowChunker(100, 20)

		chunks, err := chunker("")

		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("Text shorter than chunk size yields one chunk", func(t *testing.T) {
		chunker := WindowChunker(1000, 200)
		text := "A single short sentence."

		chunks, err := chunker(text)

		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, text, chunks[0].Content)
		assert.Equal(t, 0, chunks[0].StartPos)
		assert.Equal(t, len(text), chunks[0].EndPos)
	})

	t.Run("Error with zero chunk size", func(t *testing.T) {
		chunker := WindowChunker(0, 0)

		_, err := chunker("Some text.")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Error with overlap not smaller than chunk size", func(t *testing.T) {
		chunker := WindowChunker(100, 100)

		_, err := chunker("Some text.")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "overlap")
	})

	t.Run("Error with negative overlap", func(t *testing.T) {
		chunker := WindowChunker(100, -1)

		_, err := chunker("Some text.")

		assert.Error(t, err)
	})

	t.Run("Spans cover the full source text", func(t *testing.T) {
		chunker := WindowChunker(80, 20)
		text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 12)

		chunks, err := chunker(text)

		require.NoError(t, err)
		require.NotEmpty(t, chunks)

		assert.Equal(t, 0, chunks[0].StartPos, "First chunk must start at 0")
		assert.Equal(t, len(text), chunks[len(chunks)-1].EndPos, "Last chunk must end at len(text)")

		for i := 1; i < len(chunks); i++ {
			assert.Greater(t, chunks[i].StartPos, chunks[i-1].StartPos, "Chunks must be in increasing start order")
			assert.LessOrEqual(t, chunks[i].StartPos, chunks[i-1].EndPos, "Spans must leave no gap")
		}
	})

	t.Run("Consecutive chunks overlap by at most overlap", func(t *testing.T) {
		overlap := 30
		chunker := WindowChunker(120, overlap)
		text := strings.Repeat("Water flows through the hose at a constant rate. ", 20)

		chunks, err := chunker(text)

		require.NoError(t, err)
		require.Greater(t, len(chunks), 1)

		for i := 1; i < len(chunks); i++ {
			assert.LessOrEqual(t, chunks[i-1].EndPos-chunks[i].StartPos, overlap,
				"Overlap between chunks %d and %d exceeds configured overlap", i-1, i)
		}
	})

	t.Run("Chunks end at sentence boundaries", func(t *testing.T) {
		// 40 short sentences, 1205 characters total
		var sb strings.Builder
		for i := 0; i < 40; i++ {
			sb.WriteString("This is short sentence number x. ")
		}
		text := strings.TrimRight(sb.String(), " ")

		chunker := WindowChunker(200, 50)
		chunks, err := chunker(text)

		require.NoError(t, err)
		require.Greater(t, len(chunks), 1)

		for i, chunk := range chunks {
			if i < len(chunks)-1 {
				assert.True(t, strings.HasSuffix(chunk.Content, "."),
					"Chunk %d should end at a sentence boundary, got %q", i, chunk.Content)
			}
			assert.LessOrEqual(t, chunk.EndPos-chunk.StartPos, 200,
				"Chunk %d exceeds the window size", i)
		}
	})

	t.Run("Hard cut when no sentence boundary in window", func(t *testing.T) {
		chunker := WindowChunker(50, 10)
		text := strings.Repeat("abcdefghij", 20)

		chunks, err := chunker(text)

		require.NoError(t, err)
		require.Greater(t, len(chunks), 1)
		assert.Equal(t, 50, chunks[0].EndPos-chunks[0].StartPos, "Expected hard cut at chunk size")
	})

	t.Run("Chunk indices are sequential", func(t *testing.T) {
		chunker := WindowChunker(60, 15)
		text := strings.Repeat("Check the pressure gauge before opening the valve. ", 10)

		chunks, err := chunker(text)

		require.NoError(t, err)
		for i, chunk := range chunks {
			assert.Equal(t, i, chunk.ChunkIndex)
		}
	})

	t.Run("Deterministic across repeated calls", func(t *testing.T) {
		chunker := WindowChunker(100, 25)
		text := strings.Repeat("Ladders must be inspected after every use. ", 15)

		first, err := chunker(text)
		require.NoError(t, err)
		second, err := chunker(text)
		require.NoError(t, err)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Content, second[i].Content)
			assert.Equal(t, first[i].StartPos, second[i].StartPos)
			assert.Equal(t, first[i].EndPos, second[i].EndPos)
		}
	})
}

func TestSentenceChunker(t *testing.T) {
	t.Run("Valid chunking with multiple sentences", func(t *testing.T) {
		chunker := SentenceChunker(2)
		text := "This is sentence one. This is sentence two. This is sentence three."

		chunks, err := chunker(text)

		require.NoError(t, err)
		assert.Equal(t, 2, len(chunks))
		for i, chunk := range chunks {
			assert.NotEmpty(t, chunk.Content)
			assert.Equal(t, i, chunk.ChunkIndex)
		}
	})

	t.Run("Single sentence", func(t *testing.T) {
		chunker := SentenceChunker(1)
		text := "This is a single sentence."

		chunks, err := chunker(text)

		require.NoError(t, err)
		assert.Equal(t, 1, len(chunks))
		assert.Contains(t, chunks[0].Content, "single sentence")
	})

	t.Run("Error with zero max sentences", func(t *testing.T) {
		chunker := SentenceChunker(0)

		_, err := chunker("Some text.")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Empty text yields empty sequence", func(t *testing.T) {
		chunker := SentenceChunker(3)

		chunks, err := chunker("   \n  ")

		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
}
