// Package dragonbot assembles the Dragon Funded support bot: conversation
// memory, knowledge retrieval, prompt assembly, and generation behind one
// entry point.
//
// Dependencies are constructed explicitly and injected; nothing in the
// module holds process-global state. Construction errors (bad credentials,
// unreadable storage) surface from New so a misconfigured deployment fails
// at startup instead of mid-conversation.
package dragonbot

import (
	"context"
	"fmt"
	"log"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dragonfunded/dragonbot/config"
	"github.com/dragonfunded/dragonbot/core"
	"github.com/dragonfunded/dragonbot/knowledge"
	genaiembed "github.com/dragonfunded/dragonbot/knowledge/embedder/genai"
	"github.com/dragonfunded/dragonbot/knowledge/embedder/mock"
	chromemstore "github.com/dragonfunded/dragonbot/knowledge/store/chromem"
	"github.com/dragonfunded/dragonbot/llm"
	"github.com/dragonfunded/dragonbot/memory"
	"github.com/dragonfunded/dragonbot/orchestrator"
)

// Bot is the assembled support bot.
type Bot struct {
	orch     *orchestrator.Orchestrator
	mem      *memory.Manager
	kb       knowledge.Base
	pipeline *knowledge.Pipeline
	cached   *knowledge.Cached
	channels []string
}

// Option configures construction.
type Option func(*settings)

type settings struct {
	generator llm.Generator
	embedder  knowledge.Embedder
	kb        knowledge.Base
}

// WithGenerator overrides the generation backend chosen from configuration.
func WithGenerator(gen llm.Generator) Option {
	return func(s *settings) { s.generator = gen }
}

// WithEmbedder overrides the embedding backend chosen from configuration.
func WithEmbedder(e knowledge.Embedder) Option {
	return func(s *settings) { s.embedder = e }
}

// WithKnowledgeBase replaces the whole knowledge layer, skipping the
// vector store and retrieval cache construction.
func WithKnowledgeBase(kb knowledge.Base) Option {
	return func(s *settings) { s.kb = kb }
}

// New wires the bot from configuration. Backend selection: an explicit
// generator option wins, then Gemini when GEMINI_API_KEY is set, then
// Anthropic when ANTHROPIC_API_KEY is set. Without any of those New fails.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Bot, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	gen, err := buildGenerator(ctx, cfg, s)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		mem:      memory.NewManager(memory.WithSessionTTL(cfg.SessionTTL)),
		channels: cfg.AllowedChannels,
	}
	if len(bot.channels) == 0 {
		bot.channels = core.AllowedChannels
	}

	bot.kb = s.kb
	if bot.kb == nil {
		embedder, err := buildEmbedder(ctx, cfg, s)
		if err != nil {
			bot.mem.Close()
			return nil, err
		}

		store, err := chromemstore.New(chromemstore.Config{
			Collection:  cfg.Collection,
			PersistPath: cfg.VectorStorePath,
			Embedder:    embedder,
		})
		if err != nil {
			bot.mem.Close()
			return nil, fmt.Errorf("build knowledge store: %w", err)
		}

		cached, err := knowledge.NewCached(store, cfg.RetrievalCacheTTL)
		if err != nil {
			bot.mem.Close()
			return nil, fmt.Errorf("build retrieval cache: %w", err)
		}
		bot.cached = cached
		bot.kb = cached
	}

	bot.orch = orchestrator.New(bot.kb, gen, bot.mem)
	bot.pipeline = knowledge.NewPipeline(bot.kb)
	return bot, nil
}

// Answer validates and runs one support turn. The query message must be
// non-empty; an empty channel defaults to "web" and an unknown channel is
// rejected before any model call happens.
func (b *Bot) Answer(ctx context.Context, query core.SupportQuery) (*core.SupportResponse, error) {
	if query.Message == "" {
		return nil, fmt.Errorf("support query: message is required")
	}
	if query.ConversationID == "" {
		query = withDefaults(query)
	}
	if query.Channel == "" {
		query.Channel = "web"
	}
	if !b.allowedChannel(query.Channel) {
		return nil, fmt.Errorf("support query: channel %q is not allowed", query.Channel)
	}
	return b.orch.Run(ctx, query)
}

// allowedChannel checks the configured allow-list.
func (b *Bot) allowedChannel(ch string) bool {
	for _, allowed := range b.channels {
		if ch == allowed {
			return true
		}
	}
	return false
}

// Ask is the convenience path for one-off questions: a fresh conversation
// on the web channel.
func (b *Bot) Ask(ctx context.Context, message string) (*core.SupportResponse, error) {
	return b.Answer(ctx, core.NewSupportQuery(message))
}

// Ingest runs the ingestion pipeline over a document batch.
func (b *Bot) Ingest(ctx context.Context, docs []core.IngestionDocument) core.IngestionResult {
	return b.pipeline.Run(ctx, docs)
}

// Memory exposes the conversation memory, mainly for inspection and tests.
func (b *Bot) Memory() *memory.Manager {
	return b.mem
}

// Close releases background resources: the session sweeper and the
// retrieval cache.
func (b *Bot) Close() {
	b.mem.Close()
	if b.cached != nil {
		b.cached.Close()
	}
}

func buildGenerator(ctx context.Context, cfg config.Config, s settings) (llm.Generator, error) {
	if s.generator != nil {
		return s.generator, nil
	}
	if cfg.GeminiAPIKey != "" {
		return llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	if cfg.AnthropicAPIKey != "" {
		client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
		return llm.NewAnthropic(&client, ""), nil
	}
	return nil, fmt.Errorf("no generation backend: set GEMINI_API_KEY or ANTHROPIC_API_KEY")
}

func buildEmbedder(ctx context.Context, cfg config.Config, s settings) (knowledge.Embedder, error) {
	if s.embedder != nil {
		return s.embedder, nil
	}
	if cfg.GeminiAPIKey != "" {
		return genaiembed.New(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	}
	// No embedding credentials: retrieval still works against locally
	// ingested content via the deterministic embedder.
	log.Printf("[KNOWLEDGE] No embedding API key configured; using deterministic embedder")
	return mock.New(0), nil
}

// withDefaults fills generated fields while keeping the caller's message.
func withDefaults(query core.SupportQuery) core.SupportQuery {
	q := core.NewSupportQuery(query.Message)
	q.UserID = query.UserID
	if query.Channel != "" {
		q.Channel = query.Channel
	}
	if query.Locale != "" {
		q.Locale = query.Locale
	}
	return q
}
