package knowledge

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/dragonfunded/dragonbot/core"
)

// DefaultCacheTTL is how long a retrieval result stays cached. Policy text
// changes rarely; a short TTL mostly absorbs repeated questions within one
// conversation.
const DefaultCacheTTL = 5 * time.Minute

// Cached is a read-through retrieval cache in front of a Base. Identical
// query/k pairs within the TTL skip the embedding call and the vector
// search. Ingest invalidates the whole cache.
type Cached struct {
	base  Base
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewCached wraps base with a ristretto-backed cache. A ttl of zero or less
// uses DefaultCacheTTL.
func NewCached(base Base, ttl time.Duration) (*Cached, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000, // track frequency for ~1k cached queries
		MaxCost:     1_000,  // each entry costs 1
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create retrieval cache: %w", err)
	}

	return &Cached{base: base, cache: cache, ttl: ttl}, nil
}

// Retrieve returns cached results when available, otherwise delegates and
// caches the outcome. Empty result sets are cached too: a query the store
// cannot answer now will not answer it seconds later either.
func (c *Cached) Retrieve(ctx context.Context, query string, k int) []core.RetrievedDocument {
	key := fmt.Sprintf("%d|%s", k, query)

	if hit, ok := c.cache.Get(key); ok {
		if docs, ok := hit.([]core.RetrievedDocument); ok {
			log.Printf("[KNOWLEDGE] Cache hit for query %q (k=%d)", truncateLog(query, 50), k)
			return docs
		}
	}

	docs := c.base.Retrieve(ctx, query, k)
	c.cache.SetWithTTL(key, docs, 1, c.ttl)
	return docs
}

// Ingest delegates to the underlying base and drops all cached results so
// fresh documents become retrievable immediately.
func (c *Cached) Ingest(ctx context.Context, docs []core.IngestionDocument) error {
	if err := c.base.Ingest(ctx, docs); err != nil {
		return err
	}
	c.cache.Clear()
	return nil
}

// Wait blocks until pending cache writes are applied. Intended for tests;
// ristretto admits entries asynchronously.
func (c *Cached) Wait() {
	c.cache.Wait()
}

// Close releases the cache's internal goroutines.
func (c *Cached) Close() {
	c.cache.Close()
}

// truncateLog truncates text for logging.
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
