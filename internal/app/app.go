// Package app provides the core application initialization and lifecycle
// management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/statscope/statscope/internal/browser"
	"github.com/statscope/statscope/internal/config"
	"github.com/statscope/statscope/internal/proxy"
	"github.com/statscope/statscope/internal/ratelimit"
	"github.com/statscope/statscope/internal/retry"
	"github.com/statscope/statscope/internal/scrape"
)

// Application holds all application dependencies and manages their lifecycle.
// It is created once at startup.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Proxies   *proxy.Pool
	Launcher  *browser.Launcher
	Limiter   ratelimit.RateLimiter
	Registry  *scrape.Registry
	startTime time.Time
}

// New creates and initializes an Application: logging per config, the proxy
// pool, the browser launcher, the pacing limiter, and the platform pipelines.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	proxies := proxy.NewPool(cfg.Proxies)
	if proxies.Size() > 0 {
		logger.Debug().Int("proxies", proxies.Size()).Msg("Proxy pool initialized")
	}

	launcher := browser.NewLauncher(browser.Options{
		ChromePath: cfg.ChromePath,
		Headless:   cfg.Headless,
		UserAgents: cfg.UserAgents,
		Proxies:    proxies,
	})

	limiter := ratelimit.NewDomainLimiter(cfg.ScrapeRPS, cfg.ScrapeBurst)
	retryCfg := retry.Config{MaxAttempts: cfg.RetryAttempts, Delay: cfg.RetryDelay}

	chrome := scrape.ChromeLauncher{Launcher: launcher}
	registry := scrape.NewRegistry(
		scrape.NewInstagram(chrome, limiter, retryCfg),
		scrape.NewTwitter(chrome, retryCfg),
	)
	logger.Debug().Msg("Scrape pipelines initialized")

	app := &Application{
		Config:    cfg,
		Logger:    &logger,
		Proxies:   proxies,
		Launcher:  launcher,
		Limiter:   limiter,
		Registry:  registry,
		startTime: time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

// Close shuts the application down. Browser sessions are request-scoped and
// already released by their requests; only bookkeeping remains.
func (a *Application) Close(ctx context.Context) error {
	uptime := time.Since(a.startTime)
	a.Logger.Info().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
