package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config holds application configuration values. It is built once at process
// start and passed down explicitly; nothing in the pipeline reads the
// environment after this.
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	Port int

	// Browser
	Headless   bool
	ChromePath string
	Proxies    []string // comma-separated PROXY env value, rotated per session
	UserAgents []string // rotation pool, one chosen per session

	// Pacing between post-page visits
	ScrapeRPS   float64
	ScrapeBurst int

	// Retry budget for pipeline operations
	RetryAttempts int
	RetryDelay    time.Duration
}

// Load builds a Config by combining defaults, an optional .env file,
// environment variables, and CLI flags. Caller should pass the serve
// *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	// Missing .env is fine; system environment still applies
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      DefaultLogLevel,
		JSONLog:       DefaultJSONLog,
		Port:          DefaultPort,
		Headless:      DefaultHeadless,
		UserAgents:    DefaultUserAgents,
		ScrapeRPS:     DefaultScrapeRPS,
		ScrapeBurst:   DefaultScrapeBurst,
		RetryAttempts: DefaultRetryAttempts,
		RetryDelay:    DefaultRetryDelay,
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("PROXY"); v != "" {
		cfg.Proxies = splitProxies(v)
	}
	if v := os.Getenv("SCRAPE_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("SCRAPE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SCRAPE_HEADLESS"); v != "" {
		cfg.Headless = v != "false" && v != "0"
	}

	// CLI flags override environment
	if cmd != nil {
		if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
			if p, err := strconv.Atoi(f.Value.String()); err == nil {
				cfg.Port = p
			}
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil && f.Changed {
			cfg.Proxies = splitProxies(f.Value.String())
		}
		if f := cmd.Flags().Lookup("chrome-path"); f != nil && f.Changed {
			cfg.ChromePath = f.Value.String()
		}
		if f := cmd.Flags().Lookup("json-log"); f != nil && f.Value.String() == "true" {
			cfg.JSONLog = true
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func splitProxies(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
