// Package ratelimit throttles inbound requests with a Redis-backed sliding
// window.
package ratelimit

import (
	"context"
	"time"
)

// Limit describes one sliding window.
type Limit struct {
	Requests int
	Window   time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit Limit) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
