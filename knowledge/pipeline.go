package knowledge

import (
	"context"
	"log"

	"github.com/dragonfunded/dragonbot/core"
)

// Pipeline runs ingestion against a knowledge base and reports counters
// instead of errors, so batch callers can record the outcome without
// unwinding.
type Pipeline struct {
	kb Base
}

// NewPipeline creates an ingestion pipeline over the given knowledge base.
func NewPipeline(kb Base) *Pipeline {
	return &Pipeline{kb: kb}
}

// Run ingests the batch. A failed ingest skips the whole batch; partial
// writes inside the store are tolerated because chunk IDs are stable and
// re-ingestion is idempotent.
func (p *Pipeline) Run(ctx context.Context, docs []core.IngestionDocument) core.IngestionResult {
	if len(docs) == 0 {
		log.Printf("[KNOWLEDGE] No documents supplied to ingestion pipeline")
		return core.IngestionResult{Detail: "No documents provided."}
	}

	if err := p.kb.Ingest(ctx, docs); err != nil {
		log.Printf("[KNOWLEDGE] Ingestion failed: %v", err)
		return core.IngestionResult{Skipped: len(docs), Detail: err.Error()}
	}
	return core.IngestionResult{Indexed: len(docs)}
}
