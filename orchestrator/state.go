package orchestrator

import "github.com/dragonfunded/dragonbot/core"

// TurnState is the per-request record threaded through the turn pipeline.
// It exists for the duration of one request; each stage mutates it in place
// and only the session summary and the two new conversation turns survive
// into memory.
type TurnState struct {
	ConversationID string
	UserMessage    string
	Intent         string
	RetrievedDocs  []core.RetrievedDocument
	ResponseText   string
	Confidence     float64
	WorkflowSteps  []string
	Escalate       bool
	SessionSummary string
}
