// internal/scrape/dispatch.go
package scrape

import (
	"context"
	"fmt"

	"github.com/statscope/statscope/pkg/models"
)

// Scraper is one platform pipeline: session setup, profile extraction,
// timeline collection, aggregation.
type Scraper interface {
	// Platform returns the platform this pipeline handles
	Platform() models.Platform

	// Scrape runs the full pipeline for one validated profile URL
	Scrape(ctx context.Context, url string) (*models.ScrapeResult, error)
}

// Registry dispatches scrape targets to their platform pipeline.
type Registry struct {
	scrapers map[models.Platform]Scraper
}

// NewRegistry builds a Registry from the given pipelines.
func NewRegistry(scrapers ...Scraper) *Registry {
	r := &Registry{scrapers: make(map[models.Platform]Scraper, len(scrapers))}
	for _, s := range scrapers {
		r.scrapers[s.Platform()] = s
	}
	return r
}

// For returns the pipeline for a resolved target.
func (r *Registry) For(target models.ScrapeTarget) (Scraper, error) {
	s, ok := r.scrapers[target.Platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, target.Platform)
	}
	return s, nil
}
