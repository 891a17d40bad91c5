// Package orchestrator runs the turn pipeline that converts one user
// message into one structured support response.
//
// The pipeline is a linear chain with no branching, retries, or internal
// concurrency:
//
//	START → ClassifyIntent → RetrieveKnowledge → ComposeResponse
//	      → EvaluateHandoff → UpdateMemory → END
//
// Each stage is a transformation of the shared TurnState. Collaborator
// failures are absorbed inside the collaborators (empty retrieval results,
// apologetic generation text), so the chain always completes; anything else
// is unexpected and propagates to the caller.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dragonfunded/dragonbot/core"
	"github.com/dragonfunded/dragonbot/domain"
	"github.com/dragonfunded/dragonbot/knowledge"
	"github.com/dragonfunded/dragonbot/llm"
	"github.com/dragonfunded/dragonbot/memory"
	"github.com/dragonfunded/dragonbot/prompt"
)

const (
	// retrievalK is how many knowledge chunks one turn requests.
	retrievalK = 6

	// defaultConfidence applies when retrieval returns nothing.
	defaultConfidence = 0.5

	// escalationThreshold is the confidence floor below which a turn is
	// flagged for human follow-up.
	escalationThreshold = 0.5

	// summaryPrompt asks the model for a rolling conversation synopsis.
	summaryPrompt = "Summarize the following conversation context in under 60 tokens, " +
		"focusing on user objectives and any commitments. Context:\n"
)

// Orchestrator sequences one support turn across the knowledge base, the
// generation service, and conversation memory. All dependencies are
// injected; the orchestrator owns no global state.
type Orchestrator struct {
	kb  knowledge.Base
	gen llm.Generator
	mem *memory.Manager
}

// Option configures the orchestrator.
type Option func(*options)

type options struct {
	seed []core.IngestionDocument
}

// WithSeedCorpus replaces the built-in seed documents ingested at
// construction. An empty slice disables seeding.
func WithSeedCorpus(docs []core.IngestionDocument) Option {
	return func(o *options) {
		o.seed = docs
	}
}

// New creates an orchestrator and seeds the knowledge base with the
// baseline corpus. Seeding is best-effort: a failure is logged and the
// orchestrator still works, it just retrieves less.
func New(kb knowledge.Base, gen llm.Generator, mem *memory.Manager, opts ...Option) *Orchestrator {
	o := options{seed: knowledge.SeedDocuments()}
	for _, opt := range opts {
		opt(&o)
	}

	if len(o.seed) > 0 {
		if err := kb.Ingest(context.Background(), o.seed); err != nil {
			log.Printf("[WORKFLOW] Failed to ingest seed knowledge: %v", err)
		} else {
			log.Printf("[WORKFLOW] Seed knowledge ingested (%d documents)", len(o.seed))
		}
	}

	return &Orchestrator{kb: kb, gen: gen, mem: mem}
}

// Run executes the turn pipeline for one user query.
//
// The user message is appended to memory before the chain runs and the
// assistant reply after it completes; if the chain fails unexpectedly the
// user turn is already recorded but no assistant turn is.
func (o *Orchestrator) Run(ctx context.Context, query core.SupportQuery) (*core.SupportResponse, error) {
	log.Printf("[WORKFLOW] Starting turn for conversation %s", query.ConversationID)

	o.mem.Append(query.ConversationID, core.RoleUser, query.Message)

	state := &TurnState{
		ConversationID: query.ConversationID,
		UserMessage:    query.Message,
		WorkflowSteps:  []string{},
		SessionSummary: o.mem.SessionSummary(query.ConversationID),
	}

	o.stageClassifyIntent(state)
	o.stageRetrieveKnowledge(ctx, state)
	o.stageComposeResponse(ctx, state)
	o.stageEvaluateHandoff(state)
	o.stageUpdateMemory(state)

	response := &core.SupportResponse{
		Reply:              state.ResponseText,
		Confidence:         state.Confidence,
		Sources:            state.RetrievedDocs,
		WorkflowSteps:      state.WorkflowSteps,
		EscalationRequired: state.Escalate,
		FollowUpQuestions:  deriveFollowUps(state.Intent),
		SuggestedActions:   deriveSuggestedActions(state),
	}

	o.mem.Append(query.ConversationID, core.RoleAssistant, response.Reply)

	log.Printf("[WORKFLOW] Turn complete: intent=%s confidence=%.2f escalate=%t steps=%d",
		state.Intent, state.Confidence, state.Escalate, len(state.WorkflowSteps))
	return response, nil
}

// stageClassifyIntent assigns the turn's intent via keyword matching.
func (o *Orchestrator) stageClassifyIntent(state *TurnState) {
	state.Intent = classifyIntent(state.UserMessage)
}

// stageRetrieveKnowledge queries the knowledge base and sets confidence to
// the best document score, or the default when nothing is retrieved.
// Retrieval is best-effort by contract, so this stage never fails.
func (o *Orchestrator) stageRetrieveKnowledge(ctx context.Context, state *TurnState) {
	state.RetrievedDocs = o.kb.Retrieve(ctx, state.UserMessage, retrievalK)

	state.Confidence = defaultConfidence
	if len(state.RetrievedDocs) > 0 {
		best := state.RetrievedDocs[0].Confidence
		for _, doc := range state.RetrievedDocs[1:] {
			if doc.Confidence > best {
				best = doc.Confidence
			}
		}
		state.Confidence = best
	}
}

// stageComposeResponse assembles the prompt, calls the generation service,
// and refreshes the in-flight session summary.
func (o *Orchestrator) stageComposeResponse(ctx context.Context, state *TurnState) {
	latestTurn := o.mem.LatestUserTurn(state.ConversationID)
	if latestTurn == "" {
		latestTurn = state.UserMessage
	}

	var overrides []prompt.Override
	switch state.Intent {
	case "dragon_club":
		overrides = append(overrides, prompt.Override{
			Key:   "dragon_club_rewards",
			Value: renderPairs(domain.DragonClubRewards),
		})
	case "referral":
		overrides = append(overrides, prompt.Override{
			Key:   "referral_program",
			Value: renderPairs(domain.ReferralProgram),
		})
	}

	fullPrompt := prompt.Assemble(
		formatRetrieval(state.RetrievedDocs),
		state.SessionSummary,
		latestTurn,
		overrides,
	)

	params := llm.DefaultParams()
	params.Temperature = 0.6
	params.MaxOutputTokens = 600
	state.ResponseText = o.gen.Generate(ctx, fullPrompt, params)
	state.WorkflowSteps = append(state.WorkflowSteps, "Composed response via hosted model.")

	if summary := o.summarizeConversation(ctx, state.ConversationID); summary != "" {
		state.SessionSummary = summary
	}
}

// stageEvaluateHandoff decides whether the turn needs human escalation:
// confidence under the threshold, or the reply itself mentioning
// "escalate".
func (o *Orchestrator) stageEvaluateHandoff(state *TurnState) {
	state.Escalate = state.Confidence < escalationThreshold ||
		strings.Contains(strings.ToLower(state.ResponseText), "escalate")
	if state.Escalate {
		state.WorkflowSteps = append(state.WorkflowSteps, "Flagged for human escalation.")
	}
}

// stageUpdateMemory persists the refreshed summary back to the session.
func (o *Orchestrator) stageUpdateMemory(state *TurnState) {
	if state.SessionSummary != "" {
		o.mem.UpdateSummary(state.ConversationID, state.SessionSummary)
	}
}

// summarizeConversation asks the generation service for a short synopsis of
// the recent transcript. Returns "" when there is nothing to summarize.
func (o *Orchestrator) summarizeConversation(ctx context.Context, conversationID string) string {
	transcript := o.mem.RecentTranscript(conversationID, memory.DefaultTranscriptTurns)
	if transcript == "" {
		return ""
	}

	params := llm.DefaultParams()
	params.Temperature = 0.3
	params.MaxOutputTokens = 120
	return strings.TrimSpace(o.gen.Generate(ctx, summaryPrompt+transcript, params))
}

// formatRetrieval renders retrieved documents into the prompt's knowledge
// block.
func formatRetrieval(docs []core.RetrievedDocument) string {
	if len(docs) == 0 {
		return "No matching documents retrieved. Fall back to policy summary."
	}

	formatted := make([]string, 0, len(docs))
	for _, doc := range docs {
		provenance := doc.Provenance
		if provenance == "" {
			provenance = "internal knowledge base"
		}
		formatted = append(formatted, fmt.Sprintf(
			"<doc id='%s' title='%s' confidence='%.2f'>\n%s\nDomains: %s\nProvenance: %s\n</doc>",
			doc.ID, doc.Title, doc.Confidence, doc.Content,
			strings.Join(doc.Domain, ", "), provenance))
	}
	return strings.Join(formatted, "\n")
}

// renderPairs renders an ordered pair table as "key: value" lines.
func renderPairs(pairs []domain.Pair) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("%s: %s", p.Key, p.Value))
	}
	return strings.Join(lines, "\n")
}
