// Package ratelimit implements a fixed-window request limiter keyed by
// caller address.
package ratelimit

import (
	"context"
	"time"
)

// Store tracks per-key request counts inside a fixed window. Increment
// bumps the counter for key, starting a fresh window when none is active,
// and returns the count including the current request. Concurrent
// increments on the same key must not lose updates.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
