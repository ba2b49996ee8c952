package retry

import (
	"context"
	"math/rand"
	"time"
)

// Config controls how Do spaces out repeated attempts.
type Config struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	JitterFraction    float64
}

// IsRetryable reports whether an error is worth another attempt.
type IsRetryable func(error) bool

// Do calls fn until it succeeds, returns a non-retryable error, or
// MaxAttempts is exhausted. Between attempts it sleeps with exponential
// backoff, aborting early if ctx is cancelled.
func Do(ctx context.Context, cfg Config, fn func() error, isRetryable IsRetryable) error {
	delay := cfg.InitialBackoff

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !isRetryable(err) || attempt >= cfg.MaxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(calculateBackoff(delay, cfg.JitterFraction)):
		}

		if delay = time.Duration(float64(delay) * cfg.BackoffMultiplier); delay > cfg.MaxBackoff {
			delay = cfg.MaxBackoff
		}
	}
}

// calculateBackoff spreads the sleep over [d*(1-f), d*(1+f)] so retrying
// clients do not hit the upstream in lockstep.
func calculateBackoff(d time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return d
	}

	spread := (rand.Float64()*2 - 1) * jitterFraction * float64(d)
	if out := float64(d) + spread; out > 0 {
		return time.Duration(out)
	}
	return 0
}
