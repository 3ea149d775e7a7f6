// Package cache defines the read-side response cache port (interface).
package cache

import (
	"context"
	"time"
)

// Cache is the port interface for caching serialized read-side responses.
type Cache interface {
	// Get retrieves a value from the cache.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores a value in the cache with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Close shuts down the cache and releases resources.
	Close()
}
