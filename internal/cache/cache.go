package cache

import (
	"context"
	"time"
)

// Cache stores rendered view payloads keyed by view path and locale
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
	Close() error
}

// NoopCache is used when no Redis address is configured. Every read misses
// and every write succeeds, so callers never branch on cache availability.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (c *NoopCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (c *NoopCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	return nil
}

func (c *NoopCache) Ping(ctx context.Context) error {
	return nil
}

func (c *NoopCache) Close() error {
	return nil
}
