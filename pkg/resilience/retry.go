package resilience

import (
	"context"
	"time"
)

// RetryConfig tunes the retry harness.
type RetryConfig struct {
	MaxAttempts int
	Base        time.Duration
	Cap         time.Duration
	Jitter      float64
}

// Retry runs op up to MaxAttempts times, sleeping an exponential backoff
// between attempts. Only errors accepted by shouldRetry are retried; the
// last error is returned on exhaustion. Sleeps honor ctx cancellation.
func Retry(ctx context.Context, cfg RetryConfig, shouldRetry func(error) bool, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !shouldRetry(lastErr) || attempt == cfg.MaxAttempts {
			return lastErr
		}
		delay := ExponentialBackoff(attempt, cfg.Base, cfg.Cap, cfg.Jitter)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
