package coins

import (
	"context"
	"encoding/json"
	"log"
)

// refreshWarmSets re-fetches every configured identifier set and overwrites
// the cached entry, bypassing the hit path so entries never go stale for
// subscribers. Notifies update subscribers after a cycle that refreshed
// at least one set.
func (s *Service) refreshWarmSets(ctx context.Context) {
	refreshed := 0

	for _, ids := range s.config.Coins.RefreshSets {
		if len(ids) == 0 {
			continue
		}

		records, err := s.apiClient.FetchCoins(ctx, ids)
		if err != nil {
			log.Printf("Coins: warm set refresh failed for %v: %v", ids, err)
			continue
		}

		data, err := json.Marshal(records)
		if err != nil {
			log.Printf("Coins: failed to marshal warm set %v: %v", ids, err)
			continue
		}

		s.cache.Set(createCacheKey(ids), data, s.cacheTimeout())
		refreshed++
	}

	if refreshed > 0 {
		log.Printf("Coins: refreshed %d warm sets", refreshed)
		s.subscriptionManager.Emit(ctx)
	}
}
