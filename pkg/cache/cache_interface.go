package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Keeping it as an interface lets
// repositories run against Redis in production and a no-op or in-memory
// implementation in tests.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores a value with a TTL.
	// Entries are never invalidated early: accounts are immutable after
	// creation, so expiry is the only removal path.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
