// Package prompt renders the fixed prompt skeleton for the support bot.
//
// Assembly is a pure function of its inputs: given the same retrieved
// chunks, summary, latest turn and overrides it produces byte-identical
// output. That determinism is what makes the composition step testable even
// though the generation service behind it is not.
package prompt

import (
	"fmt"
	"strings"
)

// Override is one dynamic key/value injected into the overrides block.
// Overrides are rendered in slice order, so callers control ordering.
type Override struct {
	Key   string
	Value string
}

// SystemPrompt is the static persona and policy section.
const SystemPrompt = `You are a friendly and knowledgeable support specialist for Dragon Funded, a forex prop firm. Think of yourself as a helpful colleague who genuinely cares about helping traders succeed.

Your role:
- Help traders understand challenge rules, phase progression, account scaling, and what happens if they hit limits (daily loss, max drawdown, news trading rules, leverage).
- Guide them through KYC/AML verification, payout processes, withdrawal options, and what they need to qualify.
- Explain how the referral program works: tiers, commissions, tracking, and bonuses.
- Share info about Dragon Club rewards: $5 for a verified Trustpilot review, $15 for a recorded experience video, and an extra $15 when it is shared on social media. Be clear about proof requirements and crediting.
- When traders run into issues, help them understand what happened and what they can do next.

Program structure:
- HFT Dragon is a 1-step challenge (single evaluation phase).
- Dragon 2 is a 2-step challenge (Phase 1 and Phase 2).
- Swing has its own phase structure; check the specific program details.
- Each program has different rules, drawdown limits, profit targets, and trading conditions, so always identify which program the trader is asking about.

When explaining failures:
- Be empathetic; failing a challenge is frustrating. Acknowledge it before diving into the answer.
- State clearly which rule was violated and why the rule exists.
- Offer concrete next steps: resets, new accounts, what to do differently.

Important boundaries:
- Never give trading advice or market predictions.
- Base answers on actual policy documents; if unsure, say so and offer to open a ticket.
- If information might be outdated, be upfront about it.
- Only ask for information that is actually needed.

How to respond:
- Write like a real person helping a friend: warm, conversational, professional.
- Use contractions naturally and vary sentence length.
- Simple questions get straightforward answers; complex ones get a clear breakdown.
- Be specific and concrete, not vague corporate speak.
- End naturally with the next step when there is one.`

// responseProtocol is the static instructions section appended after context.
const responseProtocol = `<response_protocol>
Before responding, think through these steps naturally:

1. Understand what they are really asking: prop firm basics, a failed account, specific rules, payouts, the referral program, or Dragon Club rewards.
2. Check the knowledge context and prioritize the most recent reliable sources. Give program-specific answers (HFT Dragon = 1-step, Dragon 2 = 2-step).
3. If you are not confident or you see conflicting information, be honest and offer to connect them with the compliance team.
4. Craft the response naturally: address the question directly, acknowledge frustration on failure questions first, and mention where the info comes from without formal citations.
5. Let the response be as long as it needs to be, no longer.
6. If something needs a ticket or escalation, confirm it in a friendly way.
7. For failure questions, end with encouragement and next steps.

Write like a real person who genuinely wants to help, not like a chatbot following a script.
</response_protocol>`

// Assemble renders the full prompt: system persona, knowledge context,
// conversation memory, response protocol, then dynamic overrides. Sections
// are joined by a blank line; sections that render empty are omitted.
func Assemble(retrievedChunks, sessionSummary, latestUserTurn string, overrides []Override) string {
	sections := []string{
		SystemPrompt,
		knowledgeSection(retrievedChunks),
		memorySection(sessionSummary, latestUserTurn),
		responseProtocol,
		overridesSection(overrides),
	}

	rendered := make([]string, 0, len(sections))
	for _, section := range sections {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		rendered = append(rendered, section)
	}
	return strings.Join(rendered, "\n\n")
}

func knowledgeSection(retrievedChunks string) string {
	if retrievedChunks == "" {
		return ""
	}
	return fmt.Sprintf("<knowledge_context>\n%s\n</knowledge_context>", retrievedChunks)
}

func memorySection(sessionSummary, latestUserTurn string) string {
	if sessionSummary == "" && latestUserTurn == "" {
		return ""
	}
	return fmt.Sprintf("<conversation_memory>\nSummary: %s\nLatest turn: %s\n</conversation_memory>",
		sessionSummary, latestUserTurn)
}

func overridesSection(overrides []Override) string {
	if len(overrides) == 0 {
		return ""
	}
	lines := make([]string, 0, len(overrides))
	for _, o := range overrides {
		lines = append(lines, fmt.Sprintf("- %s: %s", o.Key, o.Value))
	}
	return fmt.Sprintf("<dynamic_overrides>\n%s\n</dynamic_overrides>", strings.Join(lines, "\n"))
}
