// Package llm wraps hosted language model APIs behind the Generator
// contract the orchestrator depends on.
//
// Generators never surface errors on the request path: ordinary failures
// (rate limits, bad models, transient API trouble) are classified into a
// structured Failure and rendered as an apologetic reply so the turn
// pipeline always completes with a well-formed response. Only construction
// problems, such as missing credentials, return errors, and those happen at
// startup.
package llm

import "context"

// Params are the sampling parameters for one generation call.
type Params struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// DefaultParams returns the baseline sampling configuration.
func DefaultParams() Params {
	return Params{
		Temperature:     0.2,
		TopP:            0.8,
		TopK:            32,
		MaxOutputTokens: 300,
	}
}

// Generator produces text for a prompt. Implementations must always return
// usable text: on internal failure they return a human-readable apologetic
// string instead of raising, so callers can build a response object
// unconditionally.
type Generator interface {
	Generate(ctx context.Context, prompt string, params Params) string
}
