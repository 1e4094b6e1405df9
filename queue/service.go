package queue

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/coinwatch/coins-proxy/interfaces"
	"github.com/coinwatch/coins-proxy/metrics"
)

const (
	// DEFAULT_WORKERS is the number of queue workers when not configured
	DEFAULT_WORKERS = 2

	// DEFAULT_QUEUE_SIZE is the job buffer capacity when not configured
	DEFAULT_QUEUE_SIZE = 64
)

// FetchResult carries the outcome of an asynchronous fetch
type FetchResult struct {
	Records     []interfaces.CoinRecord
	CacheStatus interfaces.CacheStatus
	Err         error
}

// CoinsProvider is the part of the coins service the queue depends on.
// Queued fetches go through the same gateway, so they share its cache.
type CoinsProvider interface {
	GetCoins(ctx context.Context, ids []string) ([]interfaces.CoinRecord, interfaces.CacheStatus, error)
}

type job struct {
	ids    []string
	result chan FetchResult
}

// Service runs fetch jobs in the background so callers can request coin
// data without blocking on the upstream API
type Service struct {
	provider      CoinsProvider
	metricsWriter *metrics.MetricsWriter
	jobs          chan job
	workers       int
	wg            sync.WaitGroup
	mu            sync.Mutex
	running       bool
	cancel        context.CancelFunc
}

// NewService creates a new fetch queue draining into the given provider
func NewService(provider CoinsProvider, workers, queueSize int) *Service {
	if workers <= 0 {
		workers = DEFAULT_WORKERS
	}
	if queueSize <= 0 {
		queueSize = DEFAULT_QUEUE_SIZE
	}

	return &Service{
		provider:      provider,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceQueue),
		jobs:          make(chan job, queueSize),
		workers:       workers,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if s.provider == nil {
		return fmt.Errorf("coins provider dependency not provided")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx)
	}

	log.Printf("Queue: started %d workers", s.workers)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false
}

// EnqueueFetch schedules a fetch for the given identifiers and returns a
// channel that yields exactly one FetchResult. A full queue fails fast
// instead of blocking the caller.
func (s *Service) EnqueueFetch(ids []string) <-chan FetchResult {
	result := make(chan FetchResult, 1)

	select {
	case s.jobs <- job{ids: ids, result: result}:
	default:
		result <- FetchResult{Err: fmt.Errorf("fetch queue is full")}
	}

	return result
}

// Pending returns the number of jobs waiting in the queue
func (s *Service) Pending() int {
	return len(s.jobs)
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.jobs:
			records, cacheStatus, err := s.provider.GetCoins(ctx, j.ids)
			s.metricsWriter.RecordCacheRequest(cacheStatus.String())
			j.result <- FetchResult{
				Records:     records,
				CacheStatus: cacheStatus,
				Err:         err,
			}
		}
	}
}
