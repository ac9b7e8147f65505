// Package cache stores raw upstream responses between runs.
//
// Caching is off by default: a crawl is meant to reflect the upstream API as
// it is right now. It exists so that repeated local runs (tuning the output,
// debugging a malformed line) do not hit ekidata.jp several hundred times.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entries under a directory, sharded by key hash
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// HTTPKey builds the cache key for an upstream response.
// The key is namespaced so different APIs sharing a backend never collide.
func HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// NullCache stores nothing; every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
