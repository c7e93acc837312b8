// Package scrape implements the extraction pipelines for the supported
// platforms: profile statistics plus a bounded timeline collection, driven
// through a narrow browser capability interface so the parsing and retry
// logic is testable without Chrome.
package scrape

import (
	"context"
	"time"
)

// Timeout caps and collection bounds for the pipelines.
const (
	// Navigation cap for every page load
	navTimeout = 70 * time.Second
	// Settle pause after load, standing in for a network-idle wait
	networkSettle = 3 * time.Second
	// Shorter settle where the platform keeps long-lived connections open
	// and network-idle would never arrive
	domSettle = 500 * time.Millisecond

	// Wait cap for the Instagram og:description meta tag
	metaWaitTimeout = 15 * time.Second
	// Wait cap for the Twitter/X profile structured-data script
	schemaWaitTimeout = 70 * time.Second

	// Timeline bounds
	maxItems          = 15
	maxLinkCandidates = 20
	maxScrollAttempts = 10
	scrollPause       = 3 * time.Second

	// Sentinel for tweets whose text body could not be read
	noTextSentinel = "No text available"
)

// Page is the browser capability surface the extractors run against.
// Implemented by *browser.Page; tests substitute fakes.
type Page interface {
	// Navigate loads url within timeout, then pauses settle for late content.
	Navigate(url string, timeout, settle time.Duration) error
	// WaitReady blocks until a node matching selector is attached.
	WaitReady(selector string, timeout time.Duration) error
	// HTML returns the rendered document.
	HTML() (string, error)
	// Evaluate runs a JS expression and unmarshals its result into out.
	Evaluate(expr string, out any) error
	// Click waits for selector (CSS or XPath) and clicks it within timeout.
	Click(selector string, timeout time.Duration) error
	// Hrefs collects up to limit anchor hrefs matching selector in order.
	Hrefs(selector string, limit int) ([]string, error)
	// ScrollPage scrolls down one viewport height.
	ScrollPage() error
	Close() error
}

// Session is one browser process and browsing context, owned by a single
// request.
type Session interface {
	NewPage() (Page, error)
	Close()
}

// Launcher opens browser sessions.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}
