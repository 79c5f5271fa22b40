package model

import (
	"time"

	"github.com/google/uuid"
)

// Chunk represents a bounded, overlapping segment of a document's text.
// StartPos and EndPos describe the half-open span [start, end) in the
// source text; chunks of one document are produced by a single deterministic
// pass and their spans cover the full text.
type Chunk struct {
	ID          int64     `json:"id"`
	DocumentID  int64     `json:"document_id"`
	DocumentRID uuid.UUID `json:"document_rid"`
	ChunkIndex  int       `json:"chunk_index"`
	Content     string    `json:"content"`
	StartPos    int       `json:"start_pos"`
	EndPos      int       `json:"end_pos"`
	Embedding   []float32 `json:"embedding,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	// Results
	DocumentTitle string   `json:"document_title,omitempty"`
	Distance      *float64 `json:"distance,omitempty"`
	Similarity    *float64 `json:"similarity,omitempty"`
}
