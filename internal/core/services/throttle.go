package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/logger"
)

// Default throttle policy: stay slightly under the provider's published
// 150 requests/minute embedding limit.
const (
	DefaultThrottleLimit  = 140
	DefaultThrottleWindow = 60 * time.Second
)

// Throttle bounds the rate of embedding calls across all callers in the
// process. It tracks recent call timestamps in a sliding window and
// blocks each caller just long enough to stay under the ceiling.
//
// All state lives behind one mutex which is held for the full Acquire
// call, including the wait. Concurrent callers are therefore served one
// at a time and can never observe more than the limit inside any
// trailing window at the moment a call is issued.
//
// Throttle is an injected component, not a package singleton, so tests
// can run independent instances in parallel.
type Throttle struct {
	mu         sync.Mutex
	limit      int
	window     time.Duration
	disabled   bool
	timestamps []time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// ThrottleOption configures a Throttle.
type ThrottleOption func(*Throttle)

// WithThrottleDisabled turns the throttle into a no-op.
func WithThrottleDisabled() ThrottleOption {
	return func(t *Throttle) {
		t.disabled = true
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) ThrottleOption {
	return func(t *Throttle) {
		t.now = now
	}
}

// WithSleep overrides the wait function. Used in tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) ThrottleOption {
	return func(t *Throttle) {
		t.sleep = sleep
	}
}

// NewThrottle creates a throttle allowing limit calls per trailing window.
func NewThrottle(limit int, window time.Duration, opts ...ThrottleOption) (*Throttle, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: throttle limit must be positive, got %d", domain.ErrInvalidConfiguration, limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("%w: throttle window must be positive, got %s", domain.ErrInvalidConfiguration, window)
	}

	t := &Throttle{
		limit:  limit,
		window: window,
		now:    time.Now,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Acquire blocks until issuing one more embedding call is within policy,
// then records the call. It never drops calls; the only early return is
// context cancellation.
func (t *Throttle) Acquire(ctx context.Context) error {
	if t.disabled {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.prune(now)

	if len(t.timestamps) >= t.limit {
		// The oldest retained timestamp leaves the window first; wait
		// exactly until then instead of polling.
		wait := t.timestamps[0].Add(t.window).Sub(now)
		if wait > 0 {
			logger.Info("Throttle ceiling reached, waiting %.2fs", wait.Seconds())
			if err := t.sleep(ctx, wait); err != nil {
				return err
			}
		}
		t.prune(t.now())
	}

	t.timestamps = append(t.timestamps, t.now())
	return nil
}

// prune drops timestamps that have left the trailing window.
// Caller must hold the mutex.
func (t *Throttle) prune(now time.Time) {
	cutoff := now.Add(-t.window)
	kept := t.timestamps[:0]
	for _, ts := range t.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	t.timestamps = kept
}

// sleepContext waits for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
