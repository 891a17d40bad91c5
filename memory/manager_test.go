package memory_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dragonfunded/dragonbot/core"
	"github.com/dragonfunded/dragonbot/memory"
)

func TestManager_AppendKeepsArrivalOrder(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	m.Append("c1", core.RoleUser, "first")
	m.Append("c1", core.RoleAssistant, "second")
	m.Append("c1", core.RoleUser, "third")

	history := m.History("c1")
	if len(history) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(history))
	}
	if history[0].Content != "first" || history[2].Content != "third" {
		t.Errorf("history out of order: %+v", history)
	}
}

func TestManager_AppendEvictsOldestBeyondCapacity(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	total := memory.HistoryCapacity + 8
	for i := 0; i < total; i++ {
		m.Append("c1", core.RoleUser, fmt.Sprintf("msg-%d", i))
	}

	if got := m.TurnCount("c1"); got != memory.HistoryCapacity {
		t.Fatalf("expected history capped at %d, got %d", memory.HistoryCapacity, got)
	}

	// Retained entries are exactly the most recent ones, in arrival order.
	history := m.History("c1")
	for i, turn := range history {
		want := fmt.Sprintf("msg-%d", total-memory.HistoryCapacity+i)
		if turn.Content != want {
			t.Errorf("history[%d] = %q, want %q", i, turn.Content, want)
		}
	}
}

func TestManager_TurnCountBelowCapacity(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	for i := 0; i < 5; i++ {
		m.Append("c1", core.RoleUser, "hello")
	}
	if got := m.TurnCount("c1"); got != 5 {
		t.Errorf("expected 5 turns, got %d", got)
	}
}

func TestManager_LatestUserTurn(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	m.Append("c1", core.RoleUser, "how do withdrawals work?")
	m.Append("c1", core.RoleAssistant, "here is how")
	m.Append("c1", core.RoleUser, "and payouts?")
	m.Append("c1", core.RoleAssistant, "bi-weekly")

	if got := m.LatestUserTurn("c1"); got != "and payouts?" {
		t.Errorf("LatestUserTurn = %q, want %q", got, "and payouts?")
	}
}

func TestManager_LatestUserTurnMissing(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	if got := m.LatestUserTurn("unknown"); got != "" {
		t.Errorf("expected empty string for unknown session, got %q", got)
	}

	m.Append("c1", core.RoleAssistant, "welcome")
	if got := m.LatestUserTurn("c1"); got != "" {
		t.Errorf("expected empty string when no user turns exist, got %q", got)
	}
}

func TestManager_SessionSummaryFallback(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	m.Append("c1", core.RoleUser, "a")
	m.Append("c1", core.RoleAssistant, "b")
	m.Append("c1", core.RoleUser, "c")
	m.Append("c1", core.RoleAssistant, "d")
	m.Append("c1", core.RoleUser, "e")
	m.Append("c1", core.RoleAssistant, "f")

	want := "user: c | assistant: d | user: e | assistant: f"
	if got := m.SessionSummary("c1"); got != want {
		t.Errorf("SessionSummary = %q, want %q", got, want)
	}
}

func TestManager_SessionSummaryPrefersStored(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	m.Append("c1", core.RoleUser, "hello")
	m.UpdateSummary("c1", "User is asking about KYC timelines.")

	if got := m.SessionSummary("c1"); got != "User is asking about KYC timelines." {
		t.Errorf("SessionSummary = %q, want stored summary", got)
	}
}

func TestManager_SessionSummaryUnknownSession(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	if got := m.SessionSummary("nope"); got != "" {
		t.Errorf("expected empty summary for unknown session, got %q", got)
	}
}

func TestManager_RecentTranscript(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	for i := 0; i < 10; i++ {
		role := core.RoleUser
		if i%2 == 1 {
			role = core.RoleAssistant
		}
		m.Append("c1", role, fmt.Sprintf("turn-%d", i))
	}

	transcript := m.RecentTranscript("c1", 2)
	lines := strings.Split(transcript, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), transcript)
	}
	if lines[0] != "user: turn-8" || lines[1] != "assistant: turn-9" {
		t.Errorf("unexpected window: %q", transcript)
	}

	// Zero turns falls back to the default window of 6.
	transcript = m.RecentTranscript("c1", 0)
	if got := len(strings.Split(transcript, "\n")); got != memory.DefaultTranscriptTurns {
		t.Errorf("expected default window of %d lines, got %d", memory.DefaultTranscriptTurns, got)
	}
}

func TestManager_RecentTranscriptEmpty(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	if got := m.RecentTranscript("unknown", 6); got != "" {
		t.Errorf("expected empty transcript for unknown session, got %q", got)
	}
}

func TestManager_UpdateSummaryCreatesSession(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	m.UpdateSummary("fresh", "summary first")
	if got := m.SessionSummary("fresh"); got != "summary first" {
		t.Errorf("SessionSummary = %q, want %q", got, "summary first")
	}
}

func TestManager_ConcurrentAppendsSameSession(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				m.Append("shared", core.RoleUser, fmt.Sprintf("g%d-%d", g, i))
			}
		}(g)
	}
	wg.Wait()

	// No lost updates and no corruption: history is exactly at capacity.
	if got := m.TurnCount("shared"); got != memory.HistoryCapacity {
		t.Errorf("expected %d turns after concurrent appends, got %d", memory.HistoryCapacity, got)
	}
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := memory.NewManager()
	defer m.Close()

	m.Append("c1", core.RoleUser, "about withdrawals")
	m.Append("c2", core.RoleUser, "about referrals")

	if got := m.LatestUserTurn("c1"); got != "about withdrawals" {
		t.Errorf("c1 latest turn = %q", got)
	}
	if got := m.LatestUserTurn("c2"); got != "about referrals" {
		t.Errorf("c2 latest turn = %q", got)
	}
}
