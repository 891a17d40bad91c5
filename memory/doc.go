// Package memory provides process-local conversation memory for the
// support bot.
//
// Each conversation gets a session holding a bounded turn history (capacity
// 12, oldest-first eviction) and an optional rolling summary refreshed by the
// orchestrator after generation. Sessions are created lazily on first
// reference and are keyed by conversation ID.
//
// Concurrency:
//   - The session map is guarded by a read-write lock so different
//     conversations never block each other.
//   - Each session has its own mutex, making append and eviction atomic.
//
// Memory is not durable: everything lives in process and is lost on restart.
// An optional TTL sweep bounds total memory by evicting whole idle sessions.
package memory
