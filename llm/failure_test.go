package llm

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want Failure
	}{
		{"rate limit", 429, RateLimited{}},
		{"missing model", 404, ModelNotFound{Model: "gemini-2.5-flash-lite"}},
		{"bad request", 400, ConfigError{Reason: "boom"}},
		{"unauthorized", 401, ConfigError{Reason: "boom"}},
		{"forbidden", 403, ConfigError{Reason: "boom"}},
		{"server error", 500, Unknown{Detail: "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyStatus(tt.code, "gemini-2.5-flash-lite", "boom", 0)
			if got != tt.want {
				t.Errorf("classifyStatus(%d) = %#v, want %#v", tt.code, got, tt.want)
			}
		})
	}
}

func TestClassifyStatusThreadsRetryAfter(t *testing.T) {
	got := classifyStatus(429, "m", "boom", 30*time.Second)
	want := RateLimited{RetryAfter: 30 * time.Second}
	if got != want {
		t.Errorf("classifyStatus(429) = %#v, want %#v", got, want)
	}
	if !strings.Contains(got.UserMessage(), "30 seconds") {
		t.Errorf("expected wait hint in message: %q", got.UserMessage())
	}
}

func TestRetryAfterHint(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"seconds", "30", 30 * time.Second},
		{"absent", "", 0},
		{"http date", "Wed, 21 Oct 2026 07:28:00 GMT", 0},
		{"negative", "-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			if got := retryAfterHint(resp); got != tt.want {
				t.Errorf("retryAfterHint(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}

	if got := retryAfterHint(nil); got != 0 {
		t.Errorf("retryAfterHint(nil) = %v", got)
	}
}

func TestRateLimitedUserMessage(t *testing.T) {
	msg := RateLimited{}.UserMessage()
	if !strings.Contains(msg, "high demand") {
		t.Errorf("unexpected message: %q", msg)
	}

	msg = RateLimited{RetryAfter: 30 * time.Second}.UserMessage()
	if !strings.Contains(msg, "30 seconds") {
		t.Errorf("expected retry hint in message: %q", msg)
	}
}

func TestModelNotFoundUserMessage(t *testing.T) {
	msg := ModelNotFound{Model: "gemini-pro"}.UserMessage()
	if !strings.Contains(msg, "gemini-pro") {
		t.Errorf("expected model name in message: %q", msg)
	}
}

func TestFailureMessagesNeverMentionEscalation(t *testing.T) {
	// The orchestrator escalates when a reply contains "escalate"; apologetic
	// text must not trip that check on its own.
	failures := []Failure{
		RateLimited{},
		RateLimited{RetryAfter: time.Minute},
		ModelNotFound{Model: "m"},
		ConfigError{Reason: "r"},
		Unknown{Detail: "d"},
	}
	for _, f := range failures {
		if strings.Contains(strings.ToLower(f.UserMessage()), "escalate") {
			t.Errorf("%T user message contains 'escalate': %q", f, f.UserMessage())
		}
	}
}
