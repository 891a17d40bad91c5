// Package domain holds Dragon Funded policy data: compliance rules and the
// reward/referral program tables used to enrich prompts and seed the
// knowledge base.
package domain

// Rule is a compliance rule or benefit.
type Rule struct {
	Title       string
	Description string
	Category    string
	Enforcement string
}

// ChallengeRules are the evaluation-phase trading rules.
var ChallengeRules = []Rule{
	{
		Title:       "Daily Loss Limit",
		Description: "Maximum daily loss is 5% of starting balance. Breaching this results in immediate account failure.",
		Category:    "challenge",
		Enforcement: "Auto-liquidation at breach; notify compliance and reset challenge.",
	},
	{
		Title:       "Overall Drawdown",
		Description: "Total drawdown must stay within 10% of starting balance across the entire challenge.",
		Category:    "challenge",
		Enforcement: "If exceeded, challenge is failed and reset fee applies.",
	},
	{
		Title:       "Economic News Restriction",
		Description: "Trading is prohibited 2 minutes before and after Tier-1 economic news releases.",
		Category:    "challenge",
		Enforcement: "Violations trigger trade invalidation and potential challenge failure.",
	},
}

// KYCRules are the identity verification requirements.
var KYCRules = []Rule{
	{
		Title:       "Identity Verification",
		Description: "Government-issued photo ID and proof of residence less than 90 days old are required.",
		Category:    "kyc",
		Enforcement: "Account remains in review until documents pass compliance.",
	},
	{
		Title:       "Beneficiary Match",
		Description: "Withdrawal beneficiary name must match KYC profile exactly.",
		Category:    "kyc",
		Enforcement: "Mismatches require re-submission and freeze payouts.",
	},
}

// WithdrawalRules are the payout eligibility rules.
var WithdrawalRules = []Rule{
	{
		Title:       "Payout Cycle",
		Description: "First payout eligible after 14 trading days and 10% profit target. Subsequent payouts on bi-weekly schedule.",
		Category:    "withdrawal",
		Enforcement: "Requests outside window are queued for next eligible date.",
	},
	{
		Title:       "Preferred Methods",
		Description: "Supported methods: Bank wire (SWIFT/SEPA), USDT (ERC20/TRC20), Wise.",
		Category:    "withdrawal",
		Enforcement: "Unsupported methods require finance approval.",
	},
}

// Pair is an ordered key/value entry. Program tables are slices of pairs so
// prompt rendering stays deterministic.
type Pair struct {
	Key   string
	Value string
}

// ReferralProgram describes the affiliate program.
var ReferralProgram = []Pair{
	{Key: "bonus_structure", Value: "Affiliates earn 10% of challenge fee on first purchase, 5% on renewals within 180 days."},
	{Key: "tracking", Value: "Unique referral dashboard with real-time status and pending payouts."},
	{Key: "payout", Value: "Monthly referral payouts, minimum threshold $50."},
}

// DragonClubRewards describes the community rewards program.
var DragonClubRewards = []Pair{
	{Key: "trustpilot_reward", Value: "$5 funded credit for published 4-star+ Trustpilot review with ticket proof."},
	{Key: "video_story_reward", Value: "$15 for 60s+ experience video submitted to support."},
	{Key: "social_share_reward", Value: "$15 additional credit when video is posted publicly and link submitted."},
	{Key: "point_system", Value: "Rewards delivered as Dragon Points (1 point = $1 credit) applied to next challenge or scaling fee."},
}

// RulesByCategory returns the rules for a category, nil when unknown.
func RulesByCategory(category string) []Rule {
	switch category {
	case "challenge":
		return ChallengeRules
	case "kyc":
		return KYCRules
	case "withdrawal":
		return WithdrawalRules
	default:
		return nil
	}
}
