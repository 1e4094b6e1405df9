package interfaces

// CacheStatus describes how a request was served relative to the cache
type CacheStatus string

const (
	// CacheStatusHit means the data was served from cache
	CacheStatusHit CacheStatus = "hit"
	// CacheStatusMiss means the data had to be fetched from the upstream API
	CacheStatusMiss CacheStatus = "miss"
)

// String returns the string representation of CacheStatus
func (cs CacheStatus) String() string {
	return string(cs)
}
