package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GeminiModel != "gemini-2.5-flash-lite" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.EmbeddingModel != "text-embedding-004" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.Collection != "dragon_funded_kb" {
		t.Errorf("Collection = %q", cfg.Collection)
	}
	if len(cfg.AllowedChannels) != 4 {
		t.Errorf("AllowedChannels = %v", cfg.AllowedChannels)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-override")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemini-override" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
}
