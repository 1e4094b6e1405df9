package coins

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coinwatch/coins-proxy/cache"
	"github.com/coinwatch/coins-proxy/coingecko"
	"github.com/coinwatch/coins-proxy/config"
	"github.com/coinwatch/coins-proxy/events"
	"github.com/coinwatch/coins-proxy/interfaces"
	"github.com/coinwatch/coins-proxy/metrics"
	"github.com/coinwatch/coins-proxy/scheduler"
)

const (
	// DEFAULT_CACHE_TIMEOUT is the TTL for cached coin data when not configured
	DEFAULT_CACHE_TIMEOUT = 3600 * time.Second

	// DEFAULT_REFRESH_INTERVAL is the warm set refresh period when not configured
	DEFAULT_REFRESH_INTERVAL = 5 * time.Minute
)

// Service implements the fetch-or-cache gateway for coin records
type Service struct {
	cache               cache.Cache
	config              *config.Config
	apiClient           coingecko.APIClient
	metricsWriter       *metrics.MetricsWriter
	subscriptionManager *events.SubscriptionManager
	updater             *scheduler.Scheduler
}

// NewService creates a new coins service with the given cache and config
func NewService(cacheService cache.Cache, cfg *config.Config) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceCoins)
	apiClient := coingecko.NewClient(cfg, metricsWriter)

	return &Service{
		cache:               cacheService,
		config:              cfg,
		apiClient:           apiClient,
		metricsWriter:       metricsWriter,
		subscriptionManager: events.NewSubscriptionManager(),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}

	if len(s.config.Coins.RefreshSets) > 0 {
		interval := s.config.Coins.RefreshInterval
		if interval <= 0 {
			interval = DEFAULT_REFRESH_INTERVAL
		}
		s.updater = scheduler.New(interval, s.refreshWarmSets)
		s.updater.Start(ctx, true)
	}

	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.updater != nil {
		s.updater.Stop()
	}
}

// GetCoins returns records for the given identifiers, fetching from the
// upstream API on a cache miss. The cache key is a pure function of the
// ordered identifier list, so repeated requests for the same list within the
// TTL window never re-fetch. Nothing is cached when the fetch fails.
func (s *Service) GetCoins(ctx context.Context, ids []string) ([]interfaces.CoinRecord, interfaces.CacheStatus, error) {
	if len(ids) == 0 {
		return []interfaces.CoinRecord{}, interfaces.CacheStatusHit, nil
	}

	key := createCacheKey(ids)

	loader := func() ([]byte, error) {
		fetchStart := time.Now()
		records, err := s.apiClient.FetchCoins(ctx, ids)
		if err != nil {
			return nil, err
		}
		s.metricsWriter.RecordFetchDuration(time.Since(fetchStart))

		return json.Marshal(records)
	}

	data, cacheStatus, err := s.cache.GetOrLoad(key, loader, s.cacheTimeout())
	s.metricsWriter.RecordCacheRequest(cacheStatus.String())
	if err != nil {
		return nil, cacheStatus, err
	}

	var records []interfaces.CoinRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, cacheStatus, fmt.Errorf("failed to unmarshal cached coin data: %w", err)
	}

	return records, cacheStatus, nil
}

// Healthy checks if the service has had at least one successful fetch
func (s *Service) Healthy() bool {
	return s.apiClient.Healthy()
}

// WarmSets returns the identifier sets kept warm by the periodic updater
func (s *Service) WarmSets() [][]string {
	return s.config.Coins.RefreshSets
}

// SubscribeUpdates subscribes to warm set refresh notifications
func (s *Service) SubscribeUpdates() events.ISubscription {
	return s.subscriptionManager.Subscribe()
}

// cacheTimeout returns the configured TTL for cached coin data
func (s *Service) cacheTimeout() time.Duration {
	if s.config.Coins.CacheTimeout > 0 {
		return s.config.Coins.CacheTimeout
	}
	return DEFAULT_CACHE_TIMEOUT
}
