package model

// Citation links a piece of assembled context back to its source document
type Citation struct {
	ID      int     `json:"id"`      // Position within the assembled context, starting at 1
	Source  string  `json:"source"`  // Source document title
	Excerpt string  `json:"excerpt"` // Bounded excerpt of the cited chunk
	Score   float64 `json:"score,omitempty"`
}

// ContextResult is the context string assembled from retrieved chunks
// together with the citations referencing their sources.
type ContextResult struct {
	Context   string     `json:"context"`
	Citations []Citation `json:"citations"`
}
