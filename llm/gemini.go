package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// Gemini is a Generator backed by the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator. A missing API key fails here, at
// startup, rather than on the first request.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini generator: API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	model = strings.TrimPrefix(model, "models/")

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	log.Printf("[LLM] Gemini generator ready (model %s)", model)
	return &Gemini{client: client, model: model}, nil
}

// Generate produces text for the prompt. Failures are classified and
// downgraded to an apologetic reply; this method never returns an error.
func (g *Gemini) Generate(ctx context.Context, prompt string, params Params) string {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(params.Temperature)),
		TopP:            genai.Ptr(float32(params.TopP)),
		TopK:            genai.Ptr(float32(params.TopK)),
		MaxOutputTokens: int32(params.MaxOutputTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		failure := g.classify(err)
		log.Printf("[LLM] Gemini call failed (%T): %v", failure, err)
		return failure.UserMessage()
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		log.Printf("[LLM] Gemini returned an empty response")
		return emptyResponseMessage
	}
	return text
}

// classify maps a genai error to a structured Failure using the API's
// status code. The genai SDK does not expose response headers, so no
// retry-after hint is available on this backend.
func (g *Gemini) classify(err error) Failure {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code, g.model, apiErr.Message, 0)
	}
	return Unknown{Detail: err.Error()}
}
