package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter keeps a token bucket per key in process. It is used when
// Redis is disabled, so limits are per instance.
type MemoryRateLimiter struct {
	limit Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewMemoryRateLimiter(limit Limit) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limit:    limit,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit.disabled() {
		return true, nil
	}
	return l.limiter(key).Allow(), nil
}

func (l *MemoryRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(l.limit.Window/time.Duration(l.limit.Requests)), l.limit.Requests)
		l.limiters[key] = limiter
	}
	return limiter
}
