package llm

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// Anthropic is a Generator backed by the Claude Messages API. It is the
// alternative backend for deployments that do not use Gemini.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// NewAnthropic creates a Claude generator from an already-configured client.
func NewAnthropic(client *anthropic.Client, model string) *Anthropic {
	if model == "" {
		model = DefaultAnthropicModel
	}
	log.Printf("[LLM] Anthropic generator ready (model %s)", model)
	return &Anthropic{client: client, model: model}
}

// Generate produces text for the prompt. Failures are classified and
// downgraded to an apologetic reply; this method never returns an error.
func (a *Anthropic) Generate(ctx context.Context, prompt string, params Params) string {
	req := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   int64(params.MaxOutputTokens),
		Temperature: anthropic.Float(params.Temperature),
		TopP:        anthropic.Float(params.TopP),
		TopK:        anthropic.Int(int64(params.TopK)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := a.client.Messages.New(ctx, req)
	if err != nil {
		failure := a.classify(err)
		log.Printf("[LLM] Claude call failed (%T): %v", failure, err)
		return failure.UserMessage()
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Printf("[LLM] Claude returned an empty response")
		return emptyResponseMessage
	}
	return text
}

// classify maps an Anthropic SDK error to a structured Failure using the
// HTTP status code.
func (a *Anthropic) classify(err error) Failure {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.StatusCode, a.model, apiErr.Error(),
			retryAfterHint(apiErr.Response))
	}
	return Unknown{Detail: err.Error()}
}

// retryAfterHint reads the Retry-After header off a rate-limited response.
// Returns zero when the header is absent or not a positive second count.
func retryAfterHint(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
