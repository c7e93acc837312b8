// Package api exposes the scraping pipeline over HTTP: request validation,
// platform dispatch, and the JSON response envelopes.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/statscope/statscope/internal/scrape"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	registry *scrape.Registry
}

// NewHandler creates a new HTTP handler around the pipeline registry.
func NewHandler(registry *scrape.Registry) *Handler {
	return &Handler{registry: registry}
}

// Router configures all HTTP routes.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Health).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/scrape", h.Scrape).Methods("POST")

	r.Use(loggingMiddleware)

	return r
}

// loggingMiddleware emits one structured event per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
