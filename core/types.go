// Package core defines the shared data model for the Dragon Funded support bot.
package core

import (
	"time"

	"github.com/google/uuid"
)

// Conversation turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AllowedChannels is the fixed set of inbound channels accepted at the boundary.
var AllowedChannels = []string{"web", "mobile", "email", "whatsapp"}

// RetrievedDocument is a scored snippet of reference material returned by the
// knowledge base for a query. Read-only to the orchestrator.
type RetrievedDocument struct {
	ID           string
	Title        string
	Content      string
	Domain       []string
	Confidence   float64 // always in [0, 1]
	LastReviewed *time.Time
	Provenance   string // empty = internal knowledge base
}

// SupportRequest is the minimal payload accepted from a client.
type SupportRequest struct {
	Query string `json:"query"`
}

// SupportQuery is the internal representation of one user turn.
type SupportQuery struct {
	Message        string
	ConversationID string
	UserID         string
	Channel        string
	Locale         string
}

// NewSupportQuery builds a SupportQuery with generated defaults: a fresh
// conversation ID, the "web" channel, and the "en-US" locale.
func NewSupportQuery(message string) SupportQuery {
	return SupportQuery{
		Message:        message,
		ConversationID: uuid.New().String(),
		Channel:        "web",
		Locale:         "en-US",
	}
}

// ValidChannel reports whether ch is on the channel allow-list.
func ValidChannel(ch string) bool {
	for _, allowed := range AllowedChannels {
		if ch == allowed {
			return true
		}
	}
	return false
}

// SupportResponse is the customer-facing result of one orchestrated turn.
type SupportResponse struct {
	Reply              string
	FollowUpQuestions  []string
	SuggestedActions   []string
	Confidence         float64 // always in [0, 1]
	Sources            []RetrievedDocument
	EscalationRequired bool
	WorkflowSteps      []string
}

// IngestionDocument is the input schema for knowledge ingestion.
type IngestionDocument struct {
	ID                 string
	Title              string
	Content            string
	Domain             []string
	Tags               []string
	EffectiveAt        *time.Time
	ExpiresAt          *time.Time
	Owner              string
	ReviewIntervalDays int
	Confidence         float64
	SourceURL          string
}

// IngestionResult reports the outcome of an ingestion run.
type IngestionResult struct {
	Indexed int
	Skipped int
	Detail  string
}
