package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound calls to one upstream.
type Limiter struct {
	name    string
	limiter *rate.Limiter
}

// New allows perMinute calls per minute with a small burst.
// A non-positive perMinute disables throttling.
func New(name string, perMinute int) *Limiter {
	if perMinute <= 0 {
		return &Limiter{name: name, limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	burst := perMinute / 10
	if burst < 1 {
		burst = 1
	}
	if burst > 10 {
		burst = 10
	}
	return &Limiter{
		name:    name,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
	}
}

// Wait blocks until a call is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limit: %w", l.name, err)
	}
	return nil
}

// Allow reports whether a call may happen now without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

func (l *Limiter) Name() string { return l.name }
