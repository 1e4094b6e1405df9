package cache

import (
	"time"

	"github.com/coinwatch/coins-proxy/interfaces"
)

//go:generate mockgen -destination=mocks/cache.go . Cache

// LoaderFunc loads the value for a key that is missing from the cache
type LoaderFunc func() ([]byte, error)

// Cache interface for a key-value store with per-entry expiration
type Cache interface {
	// GetOrLoad retrieves the value for key from cache or loads it using loader
	//
	// Parameters:
	// - key: cache key to retrieve
	// - loader: function to load the value on a miss
	// - ttl: time to live for the loaded value; if 0, uses cache's default expiration
	//
	// Concurrent misses for the same key are coalesced into a single loader
	// call; all callers share its result. Nothing is stored when loader fails.
	GetOrLoad(key string, loader LoaderFunc, ttl time.Duration) ([]byte, interfaces.CacheStatus, error)

	// Get retrieves the value for key; found is false for absent or expired entries
	Get(key string) (data []byte, found bool)

	// Set stores a value with the specified TTL; if ttl is 0, uses cache's
	// default expiration
	Set(key string, data []byte, ttl time.Duration)

	// Delete removes the entry for key
	Delete(key string)
}
