package model

// RetrievalResult represents a chunk retrieved by a query
type RetrievalResult struct {
	Chunk    *Chunk  `json:"chunk"`
	Score    float64 `json:"score"`    // Normalized similarity score in [0,1]
	Distance float64 `json:"distance"` // Raw vector distance from the store
}
