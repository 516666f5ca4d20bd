// ABOUTME: Main entry point for the standalone HTTP API server
// ABOUTME: Initializes config, index, orchestrator, and serves the chi router
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/harper/courserag/internal/api"
	"github.com/harper/courserag/internal/config"
	"github.com/harper/courserag/internal/core"
	"github.com/harper/courserag/internal/llm"
	"github.com/harper/courserag/internal/storage"
	"github.com/harper/courserag/internal/tools"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		log.Fatalf("%v", err)
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
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	store, err := storage.New(cfg.DBPath, client, cfg.CourseMatchThreshold)
	if err != nil {
		log.Fatalf("Failed to open course index: %v", err)
	}
	defer func() { _ = store.Close() }()

	registry := tools.NewRegistry()
	registry.Register(tools.NewCourseSearchTool(store, cfg.MaxResults))

	sessions := core.NewSessionStore(cfg.MaxHistory)
	orchestrator := core.NewOrchestrator(client, registry, sessions)

	handler := api.NewHandler(orchestrator, store)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", srv.Addr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
