package core

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer runs a loop at a fixed rate, sleeping away the remainder of each period
// A slow iteration is not followed by a burst of catch-up iterations
type Pacer struct {
	limiter *rate.Limiter
	period  time.Duration
}

// NewPacer creates a pacer allowing one iteration per period
func NewPacer(period time.Duration) *Pacer {
	if period <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(period), 1),
		period:  period,
	}
}

// Period returns the configured iteration period
func (p *Pacer) Period() time.Duration {
	return p.period
}

// Wait blocks until the next iteration may start
func (p *Pacer) Wait() {
	// Background context never cancels and the burst is 1, so Wait cannot fail
	_ = p.limiter.Wait(context.Background())
}
