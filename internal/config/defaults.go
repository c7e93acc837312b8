package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel = "info"
	DefaultJSONLog  = false
	DefaultPort     = 3000
	DefaultHeadless = true

	// Courtesy pacing between consecutive post-page visits on one host
	DefaultScrapeRPS   = 1.0
	DefaultScrapeBurst = 1

	// Retry budget shared by every navigation/extraction step
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 1 * time.Second
)

// DefaultUserAgents is the rotation pool of realistic desktop/mobile
// signatures. One is chosen at random per browser session.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/112.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 Version/14.0.3 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/113.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/114.0.0.0 Safari/537.36 Edg/114.0.1823.67",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) AppleWebKit/605.1.15 Version/16.5 Mobile/15E148 Safari/604.1",
}
