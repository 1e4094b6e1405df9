package coins

import "strings"

// cacheKeyPrefix namespaces coin data entries in the shared cache
const cacheKeyPrefix = "coin_data_"

// createCacheKey derives the cache key for an ordered identifier list.
// The key is a pure function of the list: same list, same key.
func createCacheKey(ids []string) string {
	return cacheKeyPrefix + strings.Join(ids, ",")
}
