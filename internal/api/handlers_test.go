package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/statscope/statscope/internal/scrape"
	"github.com/statscope/statscope/pkg/models"
)

type stubScraper struct {
	platform models.Platform
	result   *models.ScrapeResult
	err      error
	gotURL   string
}

func (s *stubScraper) Platform() models.Platform { return s.platform }

func (s *stubScraper) Scrape(ctx context.Context, url string) (*models.ScrapeResult, error) {
	s.gotURL = url
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestHandler(scrapers ...scrape.Scraper) *Handler {
	return NewHandler(scrape.NewRegistry(scrapers...))
}

func postScrape(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestScrapeMissingURL(t *testing.T) {
	h := newTestHandler()
	rec := postScrape(t, h, `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "URL is required and must be a string" {
		t.Errorf("error = %q", body.Error)
	}
	if body.Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestScrapeNonStringURL(t *testing.T) {
	h := newTestHandler()

	for _, body := range []string{`{"url": 42}`, `{"url": null}`, `{"url": ["a"]}`, `not json`} {
		rec := postScrape(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestScrapeUnsupportedURL(t *testing.T) {
	h := newTestHandler()
	rec := postScrape(t, h, `{"url": "https://facebook.com/zuck"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Only Instagram and Twitter/X URLs are supported" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestScrapeSuccess(t *testing.T) {
	stub := &stubScraper{
		platform: models.PlatformInstagram,
		result: &models.ScrapeResult{
			Platform:  models.PlatformInstagram,
			Followers: "10,500",
			Following: "3",
			PostCount: "1,234",
		},
	}
	h := newTestHandler(stub)
	rec := postScrape(t, h, `{"url": "https://www.instagram.com/nasa/"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if stub.gotURL != "https://www.instagram.com/nasa/" {
		t.Errorf("scraper got url %q", stub.gotURL)
	}

	var body struct {
		Success   bool                `json:"success"`
		Data      models.ScrapeResult `json:"data"`
		Timestamp string              `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.Data.Followers != "10,500" {
		t.Errorf("followers = %q", body.Data.Followers)
	}
	if body.Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestScrapeFailure(t *testing.T) {
	stub := &stubScraper{
		platform: models.PlatformTwitterX,
		err:      errors.New("NAVIGATION: page load timed out"),
	}
	h := newTestHandler(stub)
	rec := postScrape(t, h, `{"url": "https://x.com/nasa"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "NAVIGATION: page load timed out" {
		t.Errorf("error = %q", body.Error)
	}
}
