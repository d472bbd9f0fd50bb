// Package cache holds the JSON read-through cache used by the manager
// review dashboard.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values with a TTL. A decode failure on read is
// reported as a miss, never as an error.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
