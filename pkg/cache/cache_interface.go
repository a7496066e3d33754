package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer so the Redis implementation can
// be swapped for an in-memory one in tests.
type Cache interface {
	// Get loads key into dest.
	// Returns: (found bool, error)
	// - found = true: cache hit, dest holds the decoded value
	// - found = false: cache miss, dest is untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded) under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
