package llm

import (
	"fmt"
	"time"
)

// Failure is a classified generation error. Classification works on the
// SDK's structured status codes, never on error message text, so user-facing
// messaging cannot break when a provider rewords an error.
type Failure interface {
	// UserMessage renders the failure as the apologetic reply returned in
	// place of generated text.
	UserMessage() string

	failure()
}

// RateLimited means the provider rejected the call for quota reasons.
type RateLimited struct {
	// RetryAfter is the provider-suggested wait; zero when unknown.
	RetryAfter time.Duration
}

func (RateLimited) failure() {}

func (f RateLimited) UserMessage() string {
	if f.RetryAfter > 0 {
		return fmt.Sprintf(
			"I'm currently experiencing high demand. Please wait about %d seconds and try again.",
			int(f.RetryAfter.Seconds()))
	}
	return "I'm currently experiencing high demand. Please wait a moment and try again."
}

// ModelNotFound means the configured model does not exist or is not
// available to this API key.
type ModelNotFound struct {
	Model string
}

func (ModelNotFound) failure() {}

func (f ModelNotFound) UserMessage() string {
	return fmt.Sprintf(
		"Configuration error: the AI model %q was not found. Please check the service configuration and model access.",
		f.Model)
}

// ConfigError covers authentication and request configuration problems.
type ConfigError struct {
	Reason string
}

func (ConfigError) failure() {}

func (f ConfigError) UserMessage() string {
	return "Configuration error: the AI service rejected the request. Please check the API credentials."
}

// Unknown is any failure that does not fit a more specific kind.
type Unknown struct {
	Detail string
}

func (Unknown) failure() {}

func (f Unknown) UserMessage() string {
	return "I'm experiencing technical difficulties reaching our knowledge services. Let me connect you with a human specialist."
}

// emptyResponseMessage is returned when the provider answers successfully
// but with no usable text.
const emptyResponseMessage = "I'm sorry, I'm unable to retrieve the requested information right now."

// classifyStatus maps an HTTP status code to a Failure. retryAfter is the
// provider's suggested wait for 429s, zero when the provider gave none.
func classifyStatus(code int, model, detail string, retryAfter time.Duration) Failure {
	switch code {
	case 429:
		return RateLimited{RetryAfter: retryAfter}
	case 404:
		return ModelNotFound{Model: model}
	case 400, 401, 403:
		return ConfigError{Reason: detail}
	default:
		return Unknown{Detail: detail}
	}
}
