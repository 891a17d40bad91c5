// Package knowledge defines the knowledge base contract consumed by the
// turn orchestrator, plus the chunking and caching layers shared by store
// implementations.
package knowledge

import (
	"context"

	"github.com/dragonfunded/dragonbot/core"
)

// Base is the similarity-search contract the orchestrator depends on.
//
// Retrieve is best-effort: implementations absorb their own failures and
// return an empty slice instead of an error, so the turn pipeline never
// fails on retrieval. Ingest is used at startup for seeding and by the
// ingestion pipeline; re-seeding the same documents must be safe.
type Base interface {
	Retrieve(ctx context.Context, query string, k int) []core.RetrievedDocument
	Ingest(ctx context.Context, docs []core.IngestionDocument) error
}

// Embedder converts text to vector embeddings. Implementations:
// embedder/genai (Gemini API) and embedder/mock (deterministic, offline).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}
