package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	urlutil "github.com/statscope/statscope/internal/utils/url"
)

// scrapeRequest is the POST /scrape payload.
type scrapeRequest struct {
	URL string `json:"url"`
}

// successResponse wraps a completed scrape.
type successResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// errorResponse carries a failure message.
type errorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "statscope",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Scrape validates the requested URL, dispatches it to the matching
// platform pipeline, and writes the result envelope.
func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL json.RawMessage `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "URL is required and must be a string")
		return
	}

	var rawURL string
	if len(req.URL) == 0 || json.Unmarshal(req.URL, &rawURL) != nil {
		writeError(w, http.StatusBadRequest, "URL is required and must be a string")
		return
	}

	target, err := urlutil.ResolveTarget(rawURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Only Instagram and Twitter/X URLs are supported")
		return
	}

	scraper, err := h.registry.For(target)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Only Instagram and Twitter/X URLs are supported")
		return
	}

	log.Info().
		Str("url", rawURL).
		Str("platform", string(target.Platform)).
		Msg("Scrape started")

	result, err := scraper.Scrape(r.Context(), target.URL)
	if err != nil {
		log.Error().Err(err).Str("url", rawURL).Msg("Scrape failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
