// Package cache stores short-lived byte values keyed by string.
//
// Registry lookups made during PyPI validation go through a [Cache] so that
// repeated runs, and repeated names within a run, do not hit the index again.
// Backends:
//
//   - [NullCache]: never stores anything
//   - [MemoryCache]: bounded in-process LRU
//   - [FileCache]: one JSON file per key under a directory
//   - [RedisCache]: shared across processes
//
// [Scoped] prefixes every key, so deployments sharing a backend stay apart.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a key/value store with per-entry expiry. A zero ttl means the
// entry does not expire. Get reports a miss with ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache never stores anything. It backs clients when caching is off.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)       { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                    { return nil }
func (NullCache) Close() error                                            { return nil }

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
