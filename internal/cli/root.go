// Package cli wires the cobra command tree for the statscope binary.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/statscope/statscope/internal/api"
	"github.com/statscope/statscope/internal/app"
	"github.com/statscope/statscope/internal/config"
)

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "statscope",
	Short: "Social profile statistics scraper",
	Long: `statscope serves an HTTP API that scrapes public Instagram and
Twitter/X profiles with headless Chrome and returns normalized
follower, following, and post statistics as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scraping HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", config.DefaultPort, "HTTP listen port")
	serveCmd.Flags().String("proxy", "", "comma-separated proxy list (scheme://host:port)")
	serveCmd.Flags().String("chrome-path", "", "path to the Chrome/Chromium binary")
	serveCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	serveCmd.Flags().Bool("json-log", false, "emit JSON log lines instead of console output")

	rootCmd.AddCommand(serveCmd)
}

// Execute runs the command tree. ctx is cancelled on SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	handler := api.NewHandler(application.Registry)
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     handler.Router(),
		ReadTimeout: 15 * time.Second,
		// A scrape can legitimately run for minutes, so the response
		// write deadline stays unset.
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	return application.Close(shutdownCtx)
}
