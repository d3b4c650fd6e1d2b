package repository

import (
	"context"
	"time"
)

// CacheRepository caches raw upstream payloads between fetches. Delete
// invalidates a payload so the next refresh goes back to the upstream.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
