// internal/retry/retry.go
package retry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Config defines retry behavior. The delay between attempts is fixed, not
// exponential: the operations retried here are browser navigations and
// selector waits where the target is rate limiting us, and hammering faster
// after a failure only makes that worse.
type Config struct {
	MaxAttempts int           // Total attempts, including the first
	Delay       time.Duration // Fixed wait between attempts
}

// DefaultConfig returns the retry budget used by all pipeline operations.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		Delay:       1 * time.Second,
	}
}

// Do executes fn with retry logic. After the attempt budget is exhausted the
// last error is returned unchanged so callers can classify it.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				log.Debug().Int("attempts", attempt).Msg("Retry succeeded")
			}
			return nil
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}

		log.Debug().
			Int("attempt", attempt).
			Int("max_attempts", cfg.MaxAttempts).
			Dur("delay", cfg.Delay).
			Err(err).
			Msg("Operation failed, retrying")

		select {
		case <-time.After(cfg.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	log.Warn().
		Int("attempts", cfg.MaxAttempts).
		Err(lastErr).
		Msg("Max retry attempts exceeded")

	return lastErr
}

// DoValue is Do for operations that produce a value. On exhaustion it returns
// the zero value and the last error unchanged.
func DoValue[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var out T
	err := Do(ctx, cfg, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
