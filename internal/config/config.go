// ABOUTME: Centralized configuration for the course RAG system
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the course chatbot
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Chunking settings
	ChunkSize    int
	ChunkOverlap int

	// Retrieval settings
	MaxResults           int
	CourseMatchThreshold float64

	// Conversation settings
	MaxHistory    int
	MaxToolRounds int

	// Storage and serving
	DBPath   string
	HTTPPort string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:            os.Getenv("OPENAI_API_KEY"),
		ChatModel:            getEnv("COURSERAG_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:       getEnv("COURSERAG_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:              getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:           getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:           getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		ChunkSize:            getEnvInt("CHUNK_SIZE", 800),
		ChunkOverlap:         getEnvInt("CHUNK_OVERLAP", 100),
		MaxResults:           getEnvInt("MAX_RESULTS", 5),
		CourseMatchThreshold: getEnvFloat("COURSE_MATCH_THRESHOLD", 0.55),
		MaxHistory:           getEnvInt("MAX_HISTORY", 2),
		MaxToolRounds:        2,
		DBPath:               getEnv("COURSERAG_DB", defaultDBPath()),
		HTTPPort:             getEnv("HTTP_PORT", "8000"),
	}

	return cfg, cfg.Validate()
}

// Validate rejects invalid configuration at startup, never at query time
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must be non-negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.CourseMatchThreshold < 0 || c.CourseMatchThreshold > 1 {
		return fmt.Errorf("COURSE_MATCH_THRESHOLD must be 0-1, got %f", c.CourseMatchThreshold)
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("MAX_RESULTS must be positive, got %d", c.MaxResults)
	}
	if c.MaxHistory < 0 {
		return fmt.Errorf("MAX_HISTORY must be non-negative, got %d", c.MaxHistory)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ChatModel == "" || c.EmbeddingModel == "" {
		return fmt.Errorf("chat and embedding model identifiers must not be empty")
	}
	return nil
}

// RequireAPIKey returns an error when no OpenAI key is configured.
// Commands that talk to the provider call this; ingest-free commands do not.
func (c *Config) RequireAPIKey() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return nil
}

// defaultDBPath returns the default database file path following XDG spec
func defaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".local", "share", "courserag", "courserag.db")
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "courserag", "courserag.db")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
