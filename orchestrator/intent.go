package orchestrator

import "strings"

// IntentGeneral is assigned when no keyword list matches.
const IntentGeneral = "general"

// intentKeywords maps each intent to its trigger keywords. Entries are
// checked in slice order and the first intent with any matching keyword
// wins, so the enumeration order is part of the contract.
var intentKeywords = []struct {
	intent   string
	keywords []string
}{
	{"challenge_rules", []string{"challenge", "phase", "rule", "drawdown", "news", "daily loss"}},
	{"kyc", []string{"kyc", "verification", "identity", "passport", "compliance"}},
	{"withdrawal", []string{"withdraw", "payout", "bank", "usdt", "payment"}},
	{"referral", []string{"referral", "affiliate", "commission", "link"}},
	{"dragon_club", []string{"dragon club", "trustpilot", "review", "video", "social"}},
}

// classifyIntent is the deterministic keyword classifier: lower-case the
// message, first matching intent in enumeration order wins, "general"
// otherwise.
func classifyIntent(message string) string {
	message = strings.ToLower(message)
	for _, entry := range intentKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(message, keyword) {
				return entry.intent
			}
		}
	}
	return IntentGeneral
}
