package ports

import (
	"context"
	"time"
)

// Cache is a plain string key-value store with per-key TTL. The park service
// uses it as a read-through cache for detail views; no eviction or
// consistency protocol beyond TTL and explicit invalidation.
type Cache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
