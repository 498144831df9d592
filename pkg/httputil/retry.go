package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Backoff is an exponential retry policy. The delay doubles after each
// failed attempt, capped at MaxDelay when it is set.
type Backoff struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration

	// OnRetry, if set, is called before each wait with the attempt number
	// (starting at 1) and the error that caused it.
	OnRetry func(attempt int, err error)
}

// DefaultBackoff makes 3 attempts starting at one second.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second, MaxDelay: 10 * time.Second}

// Do runs fn until it succeeds, returns an error not wrapped in
// [RetryableError], or runs out of attempts. It returns the last error, or
// ctx.Err() if the context ends while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		if b.OnRetry != nil {
			b.OnRetry(i+1, lastErr)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if b.MaxDelay > 0 && delay > b.MaxDelay {
			delay = b.MaxDelay
		}
	}
	return lastErr
}

// Retry runs fn with an uncapped backoff of the given attempts and initial delay.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return Backoff{Attempts: attempts, Delay: delay}.Do(ctx, fn)
}

// RetryWithBackoff runs fn with [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
