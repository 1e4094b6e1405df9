package coins

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/coinwatch/coins-proxy/cache"
	mock_cache "github.com/coinwatch/coins-proxy/cache/mocks"
	"github.com/coinwatch/coins-proxy/coingecko"
	"github.com/coinwatch/coins-proxy/config"
	"github.com/coinwatch/coins-proxy/interfaces"
)

var sampleRecords = []interfaces.CoinRecord{
	{Name: "Bitcoin", Price: 50000, MarketCap: 900000000000, Change24h: 2.5},
	{Name: "Ethereum", Price: 3000, MarketCap: 360000000000, Change24h: -1.2},
}

// fakeAPIClient implements coingecko.APIClient for tests
type fakeAPIClient struct {
	fetchCalls int32
	records    []interfaces.CoinRecord
	err        error
	healthy    bool
}

func (f *fakeAPIClient) FetchCoins(ctx context.Context, ids []string) ([]interfaces.CoinRecord, error) {
	atomic.AddInt32(&f.fetchCalls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeAPIClient) Healthy() bool {
	return f.healthy
}

func (f *fakeAPIClient) calls() int32 {
	return atomic.LoadInt32(&f.fetchCalls)
}

func newTestService(apiClient coingecko.APIClient, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = &config.Config{
			Coins: config.CoinsFetcher{CacheTimeout: time.Minute},
		}
	}

	service := NewService(cache.NewService(cache.DefaultCacheConfig()), cfg)
	service.apiClient = apiClient
	return service
}

func TestService_GetCoins_FetchesOnceWithinTTL(t *testing.T) {
	client := &fakeAPIClient{records: sampleRecords}
	service := newTestService(client, nil)

	records, status, err := service.GetCoins(context.Background(), []string{"bitcoin", "ethereum"})
	require.NoError(t, err)
	assert.Equal(t, interfaces.CacheStatusMiss, status)
	assert.Equal(t, sampleRecords, records)

	// Second call within the TTL is served from cache, no new fetch
	records, status, err = service.GetCoins(context.Background(), []string{"bitcoin", "ethereum"})
	require.NoError(t, err)
	assert.Equal(t, interfaces.CacheStatusHit, status)
	assert.Equal(t, sampleRecords, records)

	assert.Equal(t, int32(1), client.calls())
}

func TestService_GetCoins_DifferentListsFetchSeparately(t *testing.T) {
	client := &fakeAPIClient{records: sampleRecords}
	service := newTestService(client, nil)

	_, _, err := service.GetCoins(context.Background(), []string{"bitcoin"})
	require.NoError(t, err)

	// A different ordered list is a different cache entry
	_, status, err := service.GetCoins(context.Background(), []string{"bitcoin", "ethereum"})
	require.NoError(t, err)
	assert.Equal(t, interfaces.CacheStatusMiss, status)

	assert.Equal(t, int32(2), client.calls())
}

func TestService_GetCoins_NothingCachedOnFailure(t *testing.T) {
	client := &fakeAPIClient{
		records: sampleRecords,
		err:     &coingecko.RetrievalError{StatusCode: http.StatusInternalServerError, Body: "boom"},
	}
	service := newTestService(client, nil)

	_, _, err := service.GetCoins(context.Background(), []string{"bitcoin"})
	require.Error(t, err)

	var retrievalErr *coingecko.RetrievalError
	require.ErrorAs(t, err, &retrievalErr)
	assert.Equal(t, http.StatusInternalServerError, retrievalErr.StatusCode)

	// Once the upstream recovers the next call fetches again: the failed
	// attempt must not have written a cache entry
	client.err = nil

	records, status, err := service.GetCoins(context.Background(), []string{"bitcoin"})
	require.NoError(t, err)
	assert.Equal(t, interfaces.CacheStatusMiss, status)
	assert.Equal(t, sampleRecords, records)
	assert.Equal(t, int32(2), client.calls())
}

func TestService_GetCoins_EmptyIdentifiers(t *testing.T) {
	client := &fakeAPIClient{records: sampleRecords}
	service := newTestService(client, nil)

	records, _, err := service.GetCoins(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, int32(0), client.calls())
}

func TestService_GetCoins_UsesDerivedKeyAndConfiguredTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{
		Coins: config.CoinsFetcher{CacheTimeout: 42 * time.Second},
	}

	data, err := json.Marshal(sampleRecords)
	require.NoError(t, err)

	mockCache := mock_cache.NewMockCache(ctrl)
	mockCache.EXPECT().
		GetOrLoad("coin_data_bitcoin,ethereum", gomock.Any(), 42*time.Second).
		Return(data, interfaces.CacheStatusHit, nil)

	service := NewService(mockCache, cfg)
	service.apiClient = &fakeAPIClient{}

	records, status, err := service.GetCoins(context.Background(), []string{"bitcoin", "ethereum"})
	require.NoError(t, err)
	assert.Equal(t, interfaces.CacheStatusHit, status)
	assert.Equal(t, sampleRecords, records)
}

func TestService_StartRequiresCache(t *testing.T) {
	service := NewService(nil, &config.Config{})
	assert.Error(t, service.Start(context.Background()))
}

func TestService_WarmSetRefresh(t *testing.T) {
	client := &fakeAPIClient{records: sampleRecords, healthy: true}

	cfg := &config.Config{
		Coins: config.CoinsFetcher{
			CacheTimeout:    time.Minute,
			RefreshSets:     [][]string{{"bitcoin", "ethereum"}},
			RefreshInterval: time.Hour,
		},
	}
	service := newTestService(client, cfg)

	sub := service.SubscribeUpdates()
	defer sub.Cancel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, service.Start(ctx))
	defer service.Stop()

	// The first refresh cycle runs immediately and notifies subscribers
	select {
	case <-sub.Chan():
	case <-time.After(time.Second):
		t.Fatal("no refresh notification received")
	}

	// The warm set is already cached, so a request for it is a hit
	records, status, err := service.GetCoins(context.Background(), []string{"bitcoin", "ethereum"})
	require.NoError(t, err)
	assert.Equal(t, interfaces.CacheStatusHit, status)
	assert.Equal(t, sampleRecords, records)
	assert.Equal(t, int32(1), client.calls())

	assert.True(t, service.Healthy())
	assert.Equal(t, cfg.Coins.RefreshSets, service.WarmSets())
}

func TestCreateCacheKey(t *testing.T) {
	key1 := createCacheKey([]string{"btc", "eth"})
	key2 := createCacheKey([]string{"btc", "eth"})
	key3 := createCacheKey([]string{"eth", "btc"})

	assert.Equal(t, "coin_data_btc,eth", key1)

	// Pure function of the ordered list
	assert.Equal(t, key1, key2)
	assert.NotEqual(t, key1, key3)

	assert.Equal(t, "coin_data_btc", createCacheKey([]string{"btc"}))
}
