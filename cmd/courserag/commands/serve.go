// ABOUTME: CLI command to serve the HTTP API for the course chatbot
// ABOUTME: Wires orchestrator and index behind chi with graceful shutdown
package commands

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/courserag/internal/api"
	"github.com/harper/courserag/internal/core"
	"github.com/harper/courserag/internal/tools"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API for the course chatbot.

Endpoints:
  POST /api/query    {"query": "...", "session_id": "..."} -> answer with sources
  GET  /api/courses  course count and titles
  GET  /api/health   liveness check`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	registry := tools.NewRegistry()
	registry.Register(tools.NewCourseSearchTool(svc.store, svc.cfg.MaxResults))

	sessions := core.NewSessionStore(svc.cfg.MaxHistory)
	orchestrator := core.NewOrchestrator(svc.client, registry, sessions)

	handler := api.NewHandler(orchestrator, svc.store)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:         ":" + svc.cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // two model rounds can take a while
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving on %s. Press Ctrl+C to quit.", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Println("Server exited gracefully")
	return nil
}
