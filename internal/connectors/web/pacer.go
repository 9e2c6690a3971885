package web

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
)

// Ensure Pacer implements the interface.
var _ driven.Pacer = (*Pacer)(nil)

// Pacer keeps downloads polite towards the changelog host.
//
// Sequential fetches call Pause between items: a plain fixed sleep.
// Concurrent fetches call Wait before each request: a token bucket that
// lets one request start per delay.
type Pacer struct {
	delay  time.Duration
	bucket *rate.Limiter
}

// NewPacer creates a pacer for the given inter-request delay.
// A zero delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{
		delay:  delay,
		bucket: rate.NewLimiter(limit, 1),
	}
}

// Delay returns the configured inter-request delay.
func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Pause blocks for the full delay or until ctx is done.
func (p *Pacer) Pause(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Wait blocks until the next request may start.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.bucket.Wait(ctx)
}
