package limiter

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter combines a token bucket (admission rate) with a semaphore
// (concurrency cap).
type Limiter struct {
	semaphore   chan struct{}
	rateLimiter *rate.Limiter
}

func New(maxConcurrent int, ratePerSecond float64) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	limit := rate.Inf
	burst := maxConcurrent
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
		if b := int(ratePerSecond); b > burst {
			burst = b
		}
	}
	return &Limiter{
		semaphore:   make(chan struct{}, maxConcurrent),
		rateLimiter: rate.NewLimiter(limit, burst),
	}
}

func (l *Limiter) Acquire(ctx context.Context) (release func(), err error) {
	if err := l.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	select {
	case l.semaphore <- struct{}{}:
		return func() { <-l.semaphore }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Limiter) TryAcquire() (release func(), ok bool) {
	if !l.rateLimiter.Allow() {
		return nil, false
	}

	select {
	case l.semaphore <- struct{}{}:
		return func() { <-l.semaphore }, true
	default:
		return nil, false
	}
}

// InFlight reports how many slots are currently held.
func (l *Limiter) InFlight() int {
	return len(l.semaphore)
}
