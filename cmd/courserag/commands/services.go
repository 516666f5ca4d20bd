// ABOUTME: Shared service wiring for CLI commands
// ABOUTME: Builds config, OpenAI client, and the course index from the environment
package commands

import (
	"fmt"

	"github.com/harper/courserag/internal/config"
	"github.com/harper/courserag/internal/llm"
	"github.com/harper/courserag/internal/storage"
	"github.com/joho/godotenv"
)

// services bundles the components most commands need
type services struct {
	cfg    *config.Config
	client *llm.Client
	store  *storage.Storage
}

// newServices loads config and wires the OpenAI client and course index.
// Commands that reach the provider call this; it fails fast on a missing key.
func newServices() (*services, error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	store, err := storage.New(cfg.DBPath, client, cfg.CourseMatchThreshold)
	if err != nil {
		return nil, fmt.Errorf("opening course index: %w", err)
	}

	return &services{cfg: cfg, client: client, store: store}, nil
}

// Close releases the index
func (s *services) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}
