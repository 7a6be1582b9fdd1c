package cache

import (
	"context"
	"time"
)

// Store is the cache contract used for rendered dossiers. Both the Redis
// and the in-memory implementation satisfy it; the memory store is the
// fallback when Redis is not configured.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
}
