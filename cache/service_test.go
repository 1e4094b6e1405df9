package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinwatch/coins-proxy/interfaces"
)

func TestService_GetOrLoad_MissThenHit(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	require.NoError(t, service.Start(context.Background()))
	defer service.Stop()

	var loaderCalls int32
	loader := func() ([]byte, error) {
		atomic.AddInt32(&loaderCalls, 1)
		return []byte("loaded"), nil
	}

	data, status, err := service.GetOrLoad("key1", loader, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []byte("loaded"), data)
	assert.Equal(t, interfaces.CacheStatusMiss, status)

	data, status, err = service.GetOrLoad("key1", loader, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []byte("loaded"), data)
	assert.Equal(t, interfaces.CacheStatusHit, status)

	assert.Equal(t, int32(1), atomic.LoadInt32(&loaderCalls))
}

func TestService_GetOrLoad_LoaderErrorNotCached(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	defer service.Stop()

	loaderErr := errors.New("upstream down")
	failing := func() ([]byte, error) {
		return nil, loaderErr
	}

	_, status, err := service.GetOrLoad("key1", failing, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, loaderErr)
	assert.Equal(t, interfaces.CacheStatusMiss, status)

	// The failed load must not leave an entry behind
	_, found := service.Get("key1")
	assert.False(t, found)

	// A later successful load works
	data, status, err := service.GetOrLoad("key1", func() ([]byte, error) {
		return []byte("recovered"), nil
	}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []byte("recovered"), data)
	assert.Equal(t, interfaces.CacheStatusMiss, status)
}

func TestService_GetOrLoad_SingleFlight(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	defer service.Stop()

	var loaderCalls int32
	started := make(chan struct{})
	release := make(chan struct{})

	slowLoader := func() ([]byte, error) {
		atomic.AddInt32(&loaderCalls, 1)
		close(started)
		<-release
		return []byte("shared"), nil
	}

	const concurrent = 8
	var wg sync.WaitGroup
	results := make([][]byte, concurrent)

	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			data, _, err := service.GetOrLoad("hot-key", slowLoader, time.Minute)
			assert.NoError(t, err)
			results[idx] = data
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	// All callers share the result of exactly one load
	assert.Equal(t, int32(1), atomic.LoadInt32(&loaderCalls))
	for _, data := range results {
		assert.Equal(t, []byte("shared"), data)
	}
}

func TestService_SetAndDelete(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	defer service.Stop()

	service.Set("key1", []byte("value1"), 0)

	data, found := service.Get("key1")
	require.True(t, found)
	assert.Equal(t, []byte("value1"), data)

	stats := service.Stats()
	assert.Equal(t, 1, stats.Items)
	assert.True(t, stats.Enabled)

	service.Delete("key1")
	_, found = service.Get("key1")
	assert.False(t, found)
}

func TestService_DisabledConfigStillWorks(t *testing.T) {
	cfg := DefaultCacheConfig()
	cfg.GoCache.Enabled = false

	service := NewService(cfg)
	defer service.Stop()

	service.Set("key1", []byte("value1"), 0)
	_, found := service.Get("key1")
	assert.True(t, found)
	assert.False(t, service.Stats().Enabled)
}
