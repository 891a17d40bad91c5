// Package chromem implements the knowledge base on chromem-go, a pure Go
// embedded vector database.
package chromem

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/dragonfunded/dragonbot/core"
	"github.com/dragonfunded/dragonbot/knowledge"
)

// Config configures the chromem-backed knowledge base.
type Config struct {
	// Collection is the chromem collection name.
	// Default: "dragon_funded_kb".
	Collection string

	// PersistPath stores the database on disk when set; empty keeps
	// everything in memory.
	PersistPath string

	// Embedder converts document chunks and queries to vectors. Required.
	Embedder knowledge.Embedder

	// ChunkSize and ChunkOverlap control ingestion splitting. Zero values
	// use the knowledge package defaults.
	ChunkSize    int
	ChunkOverlap int
}

// Store is a chromem-go backed implementation of knowledge.Base.
type Store struct {
	col          *chromem.Collection
	embedder     knowledge.Embedder
	chunkSize    int
	chunkOverlap int
}

// New creates the store and opens (or creates) its collection. Construction
// errors such as an unreadable persist path surface here, at startup.
func New(cfg Config) (*Store, error) {
	if cfg.Embedder == nil {
		return nil, fmt.Errorf("chromem store: embedder is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = "dragon_funded_kb"
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = knowledge.DefaultChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = knowledge.DefaultChunkOverlap
	}

	var db *chromem.DB
	var err error
	if cfg.PersistPath != "" {
		db, err = chromem.NewPersistentDB(cfg.PersistPath, false)
		if err != nil {
			return nil, fmt.Errorf("open persistent vector store: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	// nil embedding func: we always supply embeddings ourselves.
	col, err := db.GetOrCreateCollection(cfg.Collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("open collection %q: %w", cfg.Collection, err)
	}

	return &Store{
		col:          col,
		embedder:     cfg.Embedder,
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
	}, nil
}

// Ingest chunks, embeds, and indexes documents. Chunk IDs derive from the
// document ID and chunk index, so re-ingesting the same documents overwrites
// in place instead of duplicating.
func (s *Store) Ingest(ctx context.Context, docs []core.IngestionDocument) error {
	indexed := 0
	for _, doc := range docs {
		chunks := knowledge.SplitContent(doc.Content, s.chunkSize, s.chunkOverlap)
		for i, chunk := range chunks {
			metadata := map[string]string{
				"doc_id":      doc.ID,
				"title":       doc.Title,
				"domain":      strings.Join(doc.Domain, ","),
				"tags":        strings.Join(doc.Tags, ","),
				"confidence":  strconv.FormatFloat(doc.Confidence, 'f', 2, 64),
				"owner":       doc.Owner,
				"source_url":  doc.SourceURL,
				"chunk_index": strconv.Itoa(i),
				"chunk_count": strconv.Itoa(len(chunks)),
			}

			embedding, err := s.embedder.Embed(ctx, chunk)
			if err != nil {
				return fmt.Errorf("embed chunk %d of %q: %w", i, doc.ID, err)
			}

			err = s.col.AddDocument(ctx, chromem.Document{
				ID:        fmt.Sprintf("%s-%d", doc.ID, i),
				Content:   chunk,
				Embedding: embedding,
				Metadata:  metadata,
			})
			if err != nil {
				return fmt.Errorf("index chunk %d of %q: %w", i, doc.ID, err)
			}
			indexed++
		}
	}

	log.Printf("[KNOWLEDGE] Ingested %d chunks from %d documents", indexed, len(docs))
	return nil
}

// Retrieve returns up to k chunks by similarity. Any internal failure is
// logged and yields an empty result so the caller's pipeline always
// completes.
func (s *Store) Retrieve(ctx context.Context, query string, k int) []core.RetrievedDocument {
	if k <= 0 {
		return nil
	}

	// chromem rejects nResults above the collection size.
	if count := s.col.Count(); count == 0 {
		log.Printf("[KNOWLEDGE] Collection is empty; no results for query")
		return nil
	} else if k > count {
		k = count
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("[KNOWLEDGE] Query embedding failed: %v", err)
		return nil
	}

	results, err := s.col.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		log.Printf("[KNOWLEDGE] Similarity search failed: %v", err)
		return nil
	}

	docs := make([]core.RetrievedDocument, 0, len(results))
	for _, result := range results {
		docs = append(docs, toRetrieved(result))
	}
	return docs
}

// toRetrieved maps a chromem result to the shared document type. The stored
// per-document confidence wins; without one the similarity score is clamped
// to [0.4, 1.0].
func toRetrieved(result chromem.Result) core.RetrievedDocument {
	confidence, err := strconv.ParseFloat(result.Metadata["confidence"], 64)
	if err != nil {
		confidence = float64(result.Similarity)
		if confidence < 0.4 {
			confidence = 0.4
		}
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	var domains []string
	if raw := result.Metadata["domain"]; raw != "" {
		domains = strings.Split(raw, ",")
	}

	return core.RetrievedDocument{
		ID:         result.Metadata["doc_id"],
		Title:      result.Metadata["title"],
		Content:    result.Content,
		Domain:     domains,
		Confidence: confidence,
		Provenance: result.Metadata["source_url"],
	}
}
