// Package resilience provides the exponential backoff helper used for
// webhook delivery. Pipeline stages never retry: a stage runs once per
// target and degrades on failure.
package resilience

import (
	"context"
	"time"
)

// Backoff configures exponential retry behavior.
type Backoff struct {
	// MaxAttempts is the total number of attempts (first try included).
	MaxAttempts int

	// Base is the delay before the first retry.
	Base time.Duration

	// Multiplier scales the delay after each failed attempt.
	Multiplier float64
}

// DefaultBackoff matches the webhook delivery policy: one try plus
// two retries, starting at one second.
func DefaultBackoff() Backoff {
	return Backoff{
		MaxAttempts: 3,
		Base:        1 * time.Second,
		Multiplier:  2.0,
	}
}

// Do runs fn until it succeeds, attempts are exhausted, or ctx is
// cancelled. Returns the last error observed.
func (b Backoff) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := b.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := b.Base
	if delay <= 0 {
		delay = time.Second
	}
	mult := b.Multiplier
	if mult < 1.0 {
		mult = 2.0
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay = time.Duration(float64(delay) * mult)
		}

		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
	}

	return lastErr
}
