package memory

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/dragonfunded/dragonbot/core"
)

// Manager holds bounded per-conversation turn history and rolling summaries.
//
// Sessions are created lazily on first reference and keyed by conversation ID.
// Concurrent requests for different conversations never block each other; the
// sessions map uses a read-write lock and each session carries its own mutex
// so append and eviction are atomic per session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	ttl      time.Duration
	stopOnce sync.Once
	stop     chan struct{}
}

// entry pairs a session with its mutex. The mutex is never copied.
type entry struct {
	mu sync.Mutex
	s  session
}

// Option configures the manager.
type Option func(*Manager)

// WithSessionTTL enables whole-session eviction: sessions idle for longer
// than ttl are removed by a background sweep. A ttl of zero or less keeps
// sessions for the process lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// NewManager creates a conversation memory manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*entry),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.ttl > 0 {
		go m.sweep()
	}
	return m
}

// Close stops the background session sweep, if one is running.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// getOrCreate returns the entry for a conversation, creating it if absent.
func (m *Manager) getOrCreate(conversationID string) *entry {
	m.mu.RLock()
	e, ok := m.sessions[conversationID]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if e, ok := m.sessions[conversationID]; ok {
		return e
	}

	e = &entry{s: session{conversationID: conversationID, lastSeen: time.Now()}}
	m.sessions[conversationID] = e
	return e
}

// get returns the entry for a conversation without creating it.
func (m *Manager) get(conversationID string) (*entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[conversationID]
	return e, ok
}

// Append adds a turn to the session's history, creating the session if
// absent. If the history exceeds HistoryCapacity the oldest turn is evicted.
// Append always succeeds.
func (m *Manager) Append(conversationID, role, content string) {
	e := m.getOrCreate(conversationID)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.s.history = append(e.s.history, Turn{Role: role, Content: content})
	if len(e.s.history) > HistoryCapacity {
		over := len(e.s.history) - HistoryCapacity
		e.s.history = append(e.s.history[:0], e.s.history[over:]...)
	}
	e.s.lastSeen = time.Now()
}

// LatestUserTurn returns the content of the most recent user-role turn,
// scanning newest to oldest. Returns "" for an unknown session or when no
// user turn exists.
func (m *Manager) LatestUserTurn(conversationID string) string {
	e, ok := m.get(conversationID)
	if !ok {
		return ""
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.s.lastSeen = time.Now()
	for i := len(e.s.history) - 1; i >= 0; i-- {
		if e.s.history[i].Role == core.RoleUser {
			return e.s.history[i].Content
		}
	}
	return ""
}

// SessionSummary returns the stored rolling summary when present, otherwise
// a heuristic summary built from the last four turns. Returns "" for an
// unknown session.
func (m *Manager) SessionSummary(conversationID string) string {
	e, ok := m.get(conversationID)
	if !ok {
		return ""
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.s.lastSeen = time.Now()
	if e.s.summary != "" {
		return e.s.summary
	}
	return summarizeHistory(e.s.history)
}

// RecentTranscript returns up to the last turns entries as newline-joined
// "role: content" lines, oldest of the window first. Returns "" for an
// unknown or empty session. A turns value of zero or less uses
// DefaultTranscriptTurns.
func (m *Manager) RecentTranscript(conversationID string, turns int) string {
	if turns <= 0 {
		turns = DefaultTranscriptTurns
	}

	e, ok := m.get(conversationID)
	if !ok {
		return ""
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.s.lastSeen = time.Now()
	if len(e.s.history) == 0 {
		return ""
	}

	start := len(e.s.history) - turns
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, len(e.s.history)-start)
	for _, turn := range e.s.history[start:] {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}
	return strings.Join(lines, "\n")
}

// UpdateSummary overwrites the session's rolling summary, creating the
// session if absent.
func (m *Manager) UpdateSummary(conversationID, summary string) {
	e := m.getOrCreate(conversationID)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.s.summary = summary
	e.s.lastSeen = time.Now()
}

// TurnCount returns the current history length for a session, 0 if unknown.
func (m *Manager) TurnCount(conversationID string) int {
	e, ok := m.get(conversationID)
	if !ok {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.s.history)
}

// History returns a copy of the session's turns in arrival order.
func (m *Manager) History(conversationID string) []Turn {
	e, ok := m.get(conversationID)
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Turn, len(e.s.history))
	copy(out, e.s.history)
	return out
}

// summarizeHistory is the fallback when no model-derived summary is stored:
// the last four turns joined as "role: content" with " | ".
func summarizeHistory(history []Turn) string {
	start := len(history) - fallbackWindow
	if start < 0 {
		start = 0
	}

	chunks := make([]string, 0, len(history)-start)
	for _, turn := range history[start:] {
		chunks = append(chunks, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}
	return strings.Join(chunks, " | ")
}

// sweep periodically evicts sessions that have been idle longer than the TTL.
func (m *Manager) sweep() {
	interval := m.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

// evictIdle removes every session whose last activity is older than the TTL.
func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, e := range m.sessions {
		e.mu.Lock()
		idle := now.Sub(e.s.lastSeen)
		e.mu.Unlock()

		if idle > m.ttl {
			delete(m.sessions, id)
			log.Printf("[MEMORY] Evicted idle session %s (idle %s)", id, idle.Round(time.Second))
		}
	}
}
