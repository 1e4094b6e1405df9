package cache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/coinwatch/coins-proxy/interfaces"
)

// Service implements Cache backed by go-cache, with single-flight
// coalescing of concurrent loads for the same key
type Service struct {
	goCache *GoCache
	group   singleflight.Group
	config  Config
}

// NewService creates a new cache service with the given configuration
func NewService(config Config) *Service {
	var goCache *GoCache

	if config.GoCache.Enabled {
		goCache = NewGoCache(config.GoCache.DefaultExpiration, config.GoCache.CleanupInterval)
	} else {
		// Create a minimal cache even if disabled for consistency
		goCache = NewGoCache(1*time.Minute, 2*time.Minute)
	}

	return &Service{
		goCache: goCache,
		config:  config,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.goCache != nil {
		s.goCache.Clear()
	}
}

// GetOrLoad retrieves the value for key from cache or loads it using loader.
// While one load for a key is in flight, further misses for the same key wait
// for it instead of fetching again; all of them report a miss.
func (s *Service) GetOrLoad(key string, loader LoaderFunc, ttl time.Duration) ([]byte, interfaces.CacheStatus, error) {
	if data, found := s.goCache.Get(key); found {
		return data, interfaces.CacheStatusHit, nil
	}

	value, err, _ := s.group.Do(key, func() (interface{}, error) {
		// A coalesced flight may have stored the value between our miss
		// and acquiring the flight
		if data, found := s.goCache.Get(key); found {
			return data, nil
		}

		data, err := loader()
		if err != nil {
			return nil, fmt.Errorf("failed to load data: %w", err)
		}

		s.goCache.Set(key, data, ttl)
		return data, nil
	})
	if err != nil {
		return nil, interfaces.CacheStatusMiss, err
	}

	return value.([]byte), interfaces.CacheStatusMiss, nil
}

// Get retrieves the value for key from cache
func (s *Service) Get(key string) ([]byte, bool) {
	return s.goCache.Get(key)
}

// Set stores a value in cache with the specified TTL
func (s *Service) Set(key string, data []byte, ttl time.Duration) {
	s.goCache.Set(key, data, ttl)
}

// Delete removes the entry for key
func (s *Service) Delete(key string) {
	s.goCache.Delete(key)
}

// Stats returns statistics about the cache service
func (s *Service) Stats() ServiceStats {
	return ServiceStats{
		Items:   s.goCache.ItemCount(),
		Enabled: s.config.GoCache.Enabled,
	}
}

// ServiceStats represents cache service statistics
type ServiceStats struct {
	Items   int  // Number of items in go-cache
	Enabled bool // Whether go-cache is enabled
}
