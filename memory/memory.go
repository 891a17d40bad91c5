package memory

import "time"

// HistoryCapacity is the maximum number of turns kept per session.
// Appending beyond it drops the oldest turn first.
const HistoryCapacity = 12

// fallbackWindow is how many trailing turns the heuristic summary uses
// when no model-derived summary has been stored yet.
const fallbackWindow = 4

// DefaultTranscriptTurns is the default window for RecentTranscript.
const DefaultTranscriptTurns = 6

// Turn is a single conversational turn. Immutable once created and owned
// exclusively by the session that contains it.
type Turn struct {
	Role    string
	Content string
}

// session aggregates memory for one conversation. history, summary and
// lastSeen are guarded by the session's own mutex in Manager.
type session struct {
	conversationID string
	history        []Turn
	summary        string
	lastSeen       time.Time
}
