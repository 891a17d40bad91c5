package orchestrator

// followUps are canned follow-up questions per intent. General or
// unrecognized intents get none.
var followUps = map[string][]string{
	"challenge_rules": {
		"Would you like me to review your latest challenge phase requirements?",
		"Do you need help analyzing your trade log for rule compliance?",
	},
	"kyc":         {"Do you need a link to securely upload your documents?"},
	"withdrawal":  {"Should I generate a checklist for your next payout request?"},
	"referral":    {"Would you like instructions for sharing your referral dashboard?"},
	"dragon_club": {"Do you want templates for your Trustpilot review or video script?"},
}

// intentActions are canned next steps per intent.
var intentActions = map[string]string{
	"challenge_rules": "Review latest account metrics against daily loss and drawdown limits.",
	"kyc":             "Prepare ID and proof of address issued within 90 days for upload.",
	"withdrawal":      "Confirm preferred payout method and eligibility window.",
	"referral":        "Check referral dashboard for pending commissions.",
	"dragon_club":     "Submit proof links for Trustpilot, video, and social posts.",
}

// escalationAction is appended when a turn is flagged for human follow-up.
const escalationAction = "Open compliance ticket for manual review."

// deriveFollowUps returns the follow-up questions for an intent.
func deriveFollowUps(intent string) []string {
	return followUps[intent]
}

// deriveSuggestedActions returns the actionable next steps for a turn.
func deriveSuggestedActions(state *TurnState) []string {
	var actions []string
	if action, ok := intentActions[state.Intent]; ok {
		actions = append(actions, action)
	}
	if state.Escalate {
		actions = append(actions, escalationAction)
	}
	return actions
}
