package domain

import "testing"

func TestRulesByCategory(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{"challenge", 3},
		{"kyc", 2},
		{"withdrawal", 2},
		{"unknown", 0},
	}

	for _, tt := range tests {
		if got := RulesByCategory(tt.category); len(got) != tt.want {
			t.Errorf("RulesByCategory(%q) returned %d rules, want %d", tt.category, len(got), tt.want)
		}
	}
}

func TestRulesCarryEnforcement(t *testing.T) {
	for _, rules := range [][]Rule{ChallengeRules, KYCRules, WithdrawalRules} {
		for _, rule := range rules {
			if rule.Title == "" || rule.Description == "" || rule.Enforcement == "" {
				t.Errorf("incomplete rule: %+v", rule)
			}
		}
	}
}

func TestProgramTablesAreOrdered(t *testing.T) {
	if DragonClubRewards[0].Key != "trustpilot_reward" {
		t.Errorf("first reward = %q", DragonClubRewards[0].Key)
	}
	if ReferralProgram[0].Key != "bonus_structure" {
		t.Errorf("first referral entry = %q", ReferralProgram[0].Key)
	}
}
