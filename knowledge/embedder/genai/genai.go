// Package genai embeds text with the Google Gemini embedding API.
package genai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "text-embedding-004"

// dimensions of the text-embedding-004 model output.
const embeddingDims = 768

// Embedder generates embeddings via the Gemini API.
type Embedder struct {
	client   *genai.Client
	model    string
	taskType string
}

// New creates a Gemini embedder. A missing API key is a construction error
// so misconfiguration surfaces at startup rather than per request.
func New(ctx context.Context, apiKey, model string) (*Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini embedder: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Embedder{
		client:   client,
		model:    model,
		taskType: "SEMANTIC_SIMILARITY",
	}, nil
}

// Embed converts a single text to an embedding vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents,
		&genai.EmbedContentConfig{TaskType: e.taskType})
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("gemini embed: no embeddings returned")
	}
	return result.Embeddings[0].Values, nil
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return embeddingDims
}
