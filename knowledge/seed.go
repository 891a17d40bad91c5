package knowledge

import (
	"fmt"
	"strings"

	"github.com/dragonfunded/dragonbot/core"
	"github.com/dragonfunded/dragonbot/domain"
)

// SeedDocuments returns the baseline corpus loaded at startup: one document
// per policy area built from the domain rule tables, plus the program
// overview. Seeding is idempotent because document and chunk IDs are stable.
func SeedDocuments() []core.IngestionDocument {
	return []core.IngestionDocument{
		ruleDocument("dragon-challenge-rules", "Challenge Rules", "challenge_rules", domain.ChallengeRules),
		ruleDocument("dragon-kyc-rules", "KYC & Verification", "kyc", domain.KYCRules),
		ruleDocument("dragon-withdrawal-rules", "Withdrawals & Payouts", "withdrawal", domain.WithdrawalRules),
		pairDocument("dragon-referral-program", "Referral Program", "referral", domain.ReferralProgram),
		pairDocument("dragon-club-rewards", "Dragon Club Rewards", "dragon_club", domain.DragonClubRewards),
		{
			ID:         "dragon-program-overview",
			Title:      "Dragon Funded Program Overview",
			Content:    programOverview,
			Domain:     []string{"dragon_funded", "faq"},
			Tags:       []string{"challenge", "hft", "swing", "phases"},
			Owner:      "KnowledgeOps",
			Confidence: 0.9,
		},
	}
}

func ruleDocument(id, title, area string, rules []domain.Rule) core.IngestionDocument {
	var b strings.Builder
	for _, rule := range rules {
		fmt.Fprintf(&b, "## %s\n%s\nEnforcement: %s\n\n", rule.Title, rule.Description, rule.Enforcement)
	}
	return core.IngestionDocument{
		ID:         id,
		Title:      title,
		Content:    strings.TrimSpace(b.String()),
		Domain:     []string{"dragon_funded", area},
		Tags:       []string{area},
		Owner:      "KnowledgeOps",
		Confidence: 0.9,
	}
}

func pairDocument(id, title, area string, pairs []domain.Pair) core.IngestionDocument {
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s: %s\n", p.Key, p.Value)
	}
	return core.IngestionDocument{
		ID:         id,
		Title:      title,
		Content:    strings.TrimSpace(b.String()),
		Domain:     []string{"dragon_funded", area},
		Tags:       []string{area},
		Owner:      "KnowledgeOps",
		Confidence: 0.9,
	}
}

const programOverview = `Dragon Funded is a forex proprietary trading firm. Traders prove their
skills through an evaluation challenge; passing earns a funded account where
they trade firm capital and keep a share of profits.

## Programs
HFT Dragon is a 1-step challenge with a single evaluation phase.
Dragon 2 is the standard 2-step challenge with Phase 1 and Phase 2.
Swing supports longer-term positions; check the program sheet for its phase
structure. Each program carries its own drawdown limits, profit targets, and
trading conditions.

## Common failure reasons
Daily loss limit breaches, overall drawdown breaches, trading through
restricted news windows, 30-day inactivity, consistency rule violations,
unmet minimum trading days, prohibited strategies (martingale, layering,
EAs on funded accounts), minimum holding time violations, and position
sizing outside the allowed leverage.`
