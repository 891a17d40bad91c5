package memory

import (
	"testing"
	"time"

	"github.com/dragonfunded/dragonbot/core"
)

func TestEvictIdleRemovesExpiredSessions(t *testing.T) {
	m := NewManager(WithSessionTTL(time.Minute))
	defer m.Close()

	m.Append("stale", core.RoleUser, "old message")
	m.Append("active", core.RoleUser, "recent message")

	// Backdate the stale session past the TTL.
	m.mu.Lock()
	m.sessions["stale"].s.lastSeen = time.Now().Add(-2 * time.Minute)
	m.mu.Unlock()

	m.evictIdle(time.Now())

	if got := m.TurnCount("stale"); got != 0 {
		t.Errorf("expected stale session evicted, still has %d turns", got)
	}
	if got := m.TurnCount("active"); got != 1 {
		t.Errorf("expected active session retained, has %d turns", got)
	}
}

func TestAccessRefreshesLastSeen(t *testing.T) {
	m := NewManager(WithSessionTTL(time.Minute))
	defer m.Close()

	m.Append("c1", core.RoleUser, "hello")

	m.mu.Lock()
	m.sessions["c1"].s.lastSeen = time.Now().Add(-2 * time.Minute)
	m.mu.Unlock()

	// Reading the session counts as activity.
	_ = m.SessionSummary("c1")

	m.evictIdle(time.Now())
	if got := m.TurnCount("c1"); got != 1 {
		t.Errorf("expected refreshed session retained, has %d turns", got)
	}
}
