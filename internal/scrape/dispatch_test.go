package scrape

import (
	"context"
	"errors"
	"testing"

	"github.com/statscope/statscope/pkg/models"
)

type stubScraper struct {
	platform models.Platform
}

func (s *stubScraper) Platform() models.Platform { return s.platform }
func (s *stubScraper) Scrape(ctx context.Context, url string) (*models.ScrapeResult, error) {
	return &models.ScrapeResult{Platform: s.platform}, nil
}

func TestRegistry_For(t *testing.T) {
	ig := &stubScraper{platform: models.PlatformInstagram}
	tw := &stubScraper{platform: models.PlatformTwitterX}
	r := NewRegistry(ig, tw)

	got, err := r.For(models.ScrapeTarget{URL: "https://www.instagram.com/nasa/", Platform: models.PlatformInstagram})
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if got != Scraper(ig) {
		t.Error("Expected the Instagram pipeline")
	}

	got, err = r.For(models.ScrapeTarget{URL: "https://x.com/nasa", Platform: models.PlatformTwitterX})
	if err != nil || got != Scraper(tw) {
		t.Errorf("Expected the Twitter pipeline, got %v, %v", got, err)
	}

	_, err = r.For(models.ScrapeTarget{Platform: "myspace"})
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("Expected ErrUnsupportedPlatform, got %v", err)
	}
}
