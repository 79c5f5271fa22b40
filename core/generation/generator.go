package generation

import (
	"context"
	"strings"

	"github.com/siherrmann/prepgen/helper"
	"google.golang.org/genai"
)

// Generator is the text-generation capability consumed by the orchestrator.
// Implementations fail by returning an error on quota or availability
// problems; the orchestrator handles those without crashing a batch run.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error)
}

// GeminiGenerator generates text through the Gemini API.
// Responses are streamed and accumulated; callers only see the full text.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator backed by the Gemini API
func NewGeminiGenerator(ctx context.Context, apiKey string, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, helper.NewError("create gemini client", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
	}, nil
}

// Generate runs a single generation call and assembles the streamed chunks
// into the full response text
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxTokens,
	}

	var sb strings.Builder
	for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt), config) {
		if err != nil {
			return "", helper.NewError("generate content", err)
		}
		sb.WriteString(resp.Text())
	}

	return strings.TrimSpace(sb.String()), nil
}
