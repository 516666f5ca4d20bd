// ABOUTME: HTTP router for the course chatbot API
// ABOUTME: Exposes query, course stats, and health endpoints under /api
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the API router
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Consistent path handling

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)
		r.Post("/query", h.QueryHandler)
		r.Get("/courses", h.CoursesHandler)
	})

	return r
}
