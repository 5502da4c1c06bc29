package fetcher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter enforces a minimum interval between requests to the same
// host. It is owned by a crawler session and passed by injection; the
// internal map is mutex-guarded so concurrent sessions sharing one limiter
// do not race.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	hosts    map[string]*rate.Limiter
}

// NewRateLimiter creates a limiter with the given per-host minimum
// inter-request interval.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		hosts:    make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed, or until ctx is done.
func (r *RateLimiter) Wait(ctx context.Context, host string) error {
	r.mu.Lock()
	limiter, ok := r.hosts[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(r.interval), 1)
		r.hosts[host] = limiter
	}
	r.mu.Unlock()

	return limiter.Wait(ctx)
}
