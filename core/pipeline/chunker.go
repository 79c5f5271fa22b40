package pipeline

import (
	"fmt"
	"strings"

	"github.com/siherrmann/prepgen/model"
)

// Sentence boundaries searched for when cutting a window. The cut is placed
// after the closest boundary before the raw cut point.
var sentenceBoundaries = []string{". ", ".\n", "! ", "? "}

// WindowChunker creates a chunker that walks the text in windows of chunkSize
// characters and cuts at the closest sentence boundary inside each window.
// Consecutive chunks overlap by up to overlap characters; the final chunk
// extends to the end of the text without overlap. If no sentence boundary is
// found inside a window, the cut falls at the raw chunkSize offset.
func WindowChunker(chunkSize int, overlap int) ChunkFunc {
	return func(text string) ([]ChunkSpan, error) {
		if chunkSize <= 0 {
			return nil, fmt.Errorf("chunk size must be positive")
		}
		if overlap < 0 || overlap >= chunkSize {
			return nil, fmt.Errorf("overlap must satisfy 0 <= overlap < chunk size")
		}

		if text == "" {
			return []ChunkSpan{}, nil
		}

		var chunks []ChunkSpan
		chunkIdx := 0
		start := 0

		for start < len(text) {
			end := start + chunkSize

			if end < len(text) {
				// Cut at the closest sentence boundary inside the window
				window := text[start:end]
				boundary := -1
				for _, b := range sentenceBoundaries {
					if idx := strings.LastIndex(window, b); idx != -1 && idx+len(b) > boundary {
						boundary = idx + len(b)
					}
				}
				if boundary > 0 {
					end = start + boundary
				}
			} else {
				end = len(text)
			}

			content := strings.TrimSpace(text[start:end])
			if content != "" {
				chunks = append(chunks, ChunkSpan{
					Content:    content,
					ChunkIndex: chunkIdx,
					StartPos:   start,
					EndPos:     end,
					Metadata:   model.Metadata{"chunking_method": "window"},
				})
				chunkIdx++
			}

			if end >= len(text) {
				break
			}

			// Advance with overlap, always making forward progress
			next := end - overlap
			if next <= start {
				next = end
			}
			start = next
		}

		return chunks, nil
	}
}

// SentenceChunker creates a chunker that groups whole sentences, up to
// maxSentencesPerChunk sentences per chunk
func SentenceChunker(maxSentencesPerChunk int) ChunkFunc {
	return func(text string) ([]ChunkSpan, error) {
		if maxSentencesPerChunk <= 0 {
			return nil, fmt.Errorf("max sentences per chunk must be positive")
		}

		// Handle empty or whitespace-only text
		if strings.TrimSpace(text) == "" {
			return []ChunkSpan{}, nil
		}

		marked := strings.ReplaceAll(text, "! ", "!|")
		marked = strings.ReplaceAll(marked, "? ", "?|")
		marked = strings.ReplaceAll(marked, ". ", ".|")

		var sentences []string
		for _, s := range strings.Split(marked, "|") {
			s = strings.TrimSpace(s)
			if s != "" {
				sentences = append(sentences, s)
			}
		}

		var chunks []ChunkSpan
		var currentChunk []string
		chunkIdx := 0
		pos := 0

		flush := func() {
			content := strings.Join(currentChunk, " ")
			chunks = append(chunks, ChunkSpan{
				Content:    content,
				ChunkIndex: chunkIdx,
				StartPos:   pos,
				EndPos:     pos + len(content),
				Metadata:   model.Metadata{"chunking_method": "sentence", "num_sentences": len(currentChunk)},
			})
			pos += len(content)
			currentChunk = nil
			chunkIdx++
		}

		for _, sentence := range sentences {
			currentChunk = append(currentChunk, sentence)
			if len(currentChunk) >= maxSentencesPerChunk {
				flush()
			}
		}

		// Add remaining sentences
		if len(currentChunk) > 0 {
			flush()
		}

		return chunks, nil
	}
}
