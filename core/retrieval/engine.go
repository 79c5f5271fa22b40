package retrieval

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/siherrmann/prepgen/core/pipeline"
	"github.com/siherrmann/prepgen/helper"
	"github.com/siherrmann/prepgen/model"
)

// Ellipsis marker appended to truncated citation excerpts
const excerptEllipsis = "..."

// VectorStore is the capability interface the engine retrieves chunks through.
// Distance is the raw (non-negative) vector distance reported by the store.
type VectorStore interface {
	SelectChunksBySimilarity(embedding []float32, limit int, threshold float64, documentRIDs []uuid.UUID) ([]*model.Chunk, error)
}

// Engine retrieves relevant chunks for a text query and assembles
// citation-annotated context strings from them.
type Engine struct {
	store VectorStore
	embed pipeline.EmbedFunc
}

// NewEngine creates a new retrieval engine
func NewEngine(store VectorStore, embed pipeline.EmbedFunc) *Engine {
	return &Engine{
		store: store,
		embed: embed,
	}
}

// Retrieve performs vector similarity search for the query, optionally scoped
// to specific documents via config.DocumentRIDs. Scores are normalized to
// [0,1] as 1 - distance, clamped.
func (e *Engine) Retrieve(ctx context.Context, query string, config *model.QueryConfig) ([]*model.RetrievalResult, error) {
	if config == nil {
		defaultConfig := model.DefaultQueryConfig()
		config = &defaultConfig
	}

	embedding, err := e.embed(query)
	if err != nil {
		return nil, helper.NewError("generate query embedding", err)
	}

	chunks, err := e.store.SelectChunksBySimilarity(embedding, config.TopK, config.SimilarityThreshold, config.DocumentRIDs)
	if err != nil {
		return nil, helper.NewError("vector search", err)
	}

	results := make([]*model.RetrievalResult, len(chunks))
	for i, chunk := range chunks {
		distance := 0.0
		if chunk.Distance != nil {
			distance = *chunk.Distance
		}
		score := clamp01(1 - distance)
		chunk.Similarity = &score

		results[i] = &model.RetrievalResult{
			Chunk:    chunk,
			Score:    score,
			Distance: distance,
		}
	}

	return results, nil
}

// BuildContext retrieves chunks for the query and assembles them into a
// context string with bracketed citation numbers assigned in ranked order.
// No matches is not an error: the result carries an empty context and no
// citations, which callers must treat as valid input to generation.
func (e *Engine) BuildContext(ctx context.Context, query string, config *model.QueryConfig) (*model.ContextResult, error) {
	if config == nil {
		defaultConfig := model.DefaultQueryConfig()
		config = &defaultConfig
	}

	results, err := e.Retrieve(ctx, query, config)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &model.ContextResult{
			Context:   "",
			Citations: []model.Citation{},
		}, nil
	}

	maxExcerpt := config.MaxExcerptLength
	if maxExcerpt <= 0 {
		maxExcerpt = model.DefaultQueryConfig().MaxExcerptLength
	}

	parts := make([]string, 0, len(results))
	citations := make([]model.Citation, 0, len(results))

	for i, result := range results {
		citationNum := i + 1
		parts = append(parts, fmt.Sprintf("[%d] %s", citationNum, result.Chunk.Content))

		citations = append(citations, model.Citation{
			ID:      citationNum,
			Source:  result.Chunk.DocumentTitle,
			Excerpt: truncateExcerpt(result.Chunk.Content, maxExcerpt),
			Score:   result.Score,
		})
	}

	return &model.ContextResult{
		Context:   strings.Join(parts, "\n\n"),
		Citations: citations,
	}, nil
}

// truncateExcerpt bounds an excerpt to maxLen bytes, marking truncation.
// The cut falls on a rune boundary so the excerpt stays valid UTF-8.
func truncateExcerpt(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + excerptEllipsis
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
