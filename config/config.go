// Package config loads environment-driven settings for the support bot.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the composition root needs. Zero-config works
// for offline development; only the API key is needed for hosted models.
type Config struct {
	// GeminiAPIKey authenticates generation and embedding calls.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// AnthropicAPIKey enables the Anthropic generation backend when set.
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`

	GeminiModel    string `mapstructure:"gemini_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`

	// VectorStorePath persists the vector database on disk; empty keeps it
	// in memory.
	VectorStorePath string `mapstructure:"vector_store_path"`

	// Collection is the vector store collection name.
	Collection string `mapstructure:"knowledge_base_collection"`

	AllowedChannels []string `mapstructure:"allowed_channels"`

	// SessionTTL evicts idle conversations; zero or less disables eviction.
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	// RetrievalCacheTTL bounds how long retrieval results are reused.
	RetrievalCacheTTL time.Duration `mapstructure:"retrieval_cache_ttl"`
}

// Load reads configuration from the environment on top of defaults.
// Variables use upper snake case (GEMINI_API_KEY, SESSION_TTL, ...).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("gemini_api_key", "")
	v.SetDefault("anthropic_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash-lite")
	v.SetDefault("embedding_model", "text-embedding-004")
	v.SetDefault("vector_store_path", "./storage/vector_store")
	v.SetDefault("knowledge_base_collection", "dragon_funded_kb")
	v.SetDefault("allowed_channels", []string{"web", "mobile", "email", "whatsapp"})
	v.SetDefault("session_ttl", 12*time.Hour)
	v.SetDefault("retrieval_cache_ttl", 5*time.Minute)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
