// Package db defines the key-value store contract backing the embedding
// cache.
package db

import (
	"context"
	"time"
)

// Store is a minimal key-value store with expiring writes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close()
}
