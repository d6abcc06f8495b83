// Package wait polls a read-only readiness check until it succeeds or a
// bounded timeout expires.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// ErrTimeout is returned when a check did not succeed within Policy.Timeout.
var ErrTimeout = errors.New("wait: timed out")

// ErrNotReady is what checks return while the awaited resource is not there yet.
var ErrNotReady = errors.New("wait: not ready")

// Policy bounds one wait.
type Policy struct {
	InitialDelay time.Duration
	Interval     time.Duration
	MaxInterval  time.Duration
	Timeout      time.Duration
	Notify       func(attempt int, err error, next time.Duration)
}

// For sleeps InitialDelay, then calls check until it returns a nil error.
// Between attempts it backs off exponentially from Interval up to
// MaxInterval. The whole wait, initial delay included, is bounded by
// Timeout; on expiry the last check error is wrapped in ErrTimeout.
func For[T any](ctx context.Context, p Policy, check func(context.Context) (T, error)) (T, error) {
	var zero T
	if p.Timeout <= 0 {
		return zero, errors.New("wait: timeout must be positive")
	}
	start := time.Now()

	if p.InitialDelay > 0 {
		timer := time.NewTimer(p.InitialDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	b := backoff.NewExponentialBackOff()
	if p.Interval > 0 {
		b.InitialInterval = p.Interval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	remaining := p.Timeout - time.Since(start)
	if remaining <= 0 {
		remaining = time.Nanosecond
	}

	attempt := 0
	opts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(remaining),
	}
	if p.Notify != nil {
		opts = append(opts, backoff.WithNotify(func(err error, next time.Duration) {
			p.Notify(attempt, err, next)
		}))
	}

	out, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		return check(ctx)
	}, opts...)
	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}
	return zero, fmt.Errorf("%w after %d attempts in %s: %w", ErrTimeout, attempt, time.Since(start).Round(time.Millisecond), err)
}
