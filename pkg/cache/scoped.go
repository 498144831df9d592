package cache

import (
	"context"
	"time"
)

// ScopedCache prefixes every key before delegating to an inner cache.
type ScopedCache struct {
	inner  Cache
	prefix string
}

// Scoped wraps inner so that all keys are prefixed with prefix, e.g. the
// deployment prefix "dev:". A nil inner is replaced by [NullCache].
func Scoped(inner Cache, prefix string) *ScopedCache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &ScopedCache{inner: inner, prefix: prefix}
}

func (c *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

func (c *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

func (c *ScopedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the inner cache.
func (c *ScopedCache) Close() error { return c.inner.Close() }

// HTTPKey builds the key under which a registry response is cached.
func HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

var _ Cache = (*ScopedCache)(nil)
