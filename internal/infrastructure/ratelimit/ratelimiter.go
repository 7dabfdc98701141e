// Package ratelimit throttles requests per key with Redis or an in-process fallback.
package ratelimit

import (
	"context"
	"time"
)

// Limit is the number of requests allowed per window.
type Limit struct {
	Requests int
	Window   time.Duration
}

func (l Limit) disabled() bool {
	return l.Requests <= 0 || l.Window <= 0
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}
