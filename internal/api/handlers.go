// ABOUTME: HTTP handlers bridging the API surface to the orchestrator
// ABOUTME: Provider failures map to 502 so callers can retry, bad input to 400
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/harper/courserag/internal/core"
	"github.com/harper/courserag/internal/llm"
	"github.com/harper/courserag/internal/models"
)

// Answerer is the query interface the handlers consume
type Answerer interface {
	Answer(query, sessionID string) (*core.Answer, error)
}

// StatsProvider exposes catalog introspection
type StatsProvider interface {
	Stats() (*models.CourseStats, error)
}

// Handler holds the services behind the HTTP API
type Handler struct {
	answerer Answerer
	stats    StatsProvider
}

// NewHandler creates the API handler
func NewHandler(answerer Answerer, stats StatsProvider) *Handler {
	return &Handler{answerer: answerer, stats: stats}
}

// HealthHandler reports liveness
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// QueryRequest is the POST /api/query body
type QueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// QueryHandler answers one user question
func (h *Handler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	answer, err := h.answerer.Answer(req.Query, req.SessionID)
	if err != nil {
		log.Printf("Error answering query: %v", err)
		if errors.Is(err, llm.ErrProvider) {
			http.Error(w, "The language model is unavailable, please retry", http.StatusBadGateway)
			return
		}
		http.Error(w, "Failed to process query", http.StatusInternalServerError)
		return
	}

	if answer.Sources == nil {
		answer.Sources = []string{}
	}
	writeJSON(w, http.StatusOK, answer)
}

// CoursesHandler returns catalog statistics
func (h *Handler) CoursesHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats()
	if err != nil {
		log.Printf("Error loading course stats: %v", err)
		http.Error(w, "Failed to load course stats", http.StatusInternalServerError)
		return
	}
	if stats.CourseTitles == nil {
		stats.CourseTitles = []string{}
	}
	writeJSON(w, http.StatusOK, stats)
}

// writeJSON writes a JSON response body with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
