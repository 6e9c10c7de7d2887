package evaluator

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// errInvalidPayload marks a response that came back but could not be
// parsed into the expected JSON shape. Retryable: the model may produce
// valid output on the next attempt.
var errInvalidPayload = errors.New("malformed model response")

const (
	initialBackoff    = 500 * time.Millisecond
	maxBackoff        = 4 * time.Second
	backoffMultiplier = 2.0
)

// callWithRetry runs fn up to 1+maxRetries times with exponential backoff
// and jitter, bounding each attempt by the configured timeout. Context
// cancellation stops retrying immediately.
func (g *Gateway) callWithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= g.cfg.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		err := fn(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return err
		}

		if attempt == g.cfg.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(attempt)):
		}
	}

	return lastErr
}

// backoff computes the wait before the next attempt with ±20% jitter.
func backoff(attempt int) time.Duration {
	wait := float64(initialBackoff) * math.Pow(backoffMultiplier, float64(attempt))
	if wait > float64(maxBackoff) {
		wait = float64(maxBackoff)
	}
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
