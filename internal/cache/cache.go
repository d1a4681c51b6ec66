package cache

import (
	"context"
	"time"
)

// Cache is the storage interface behind the feed generators. Production
// uses Redis; tests inject the in-memory mock.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
