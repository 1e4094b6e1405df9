package interfaces

import "context"

//go:generate mockgen -destination=mocks/coins.go . CoinsService

// CoinRecord is the normalized output record for a single coin.
// Records are immutable values: created on fetch, never mutated.
type CoinRecord struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	MarketCap float64 `json:"market_cap"`
	Change24h float64 `json:"change_24h"`
}

// CoinsService provides coin records for identifier lists, served from
// cache when a fresh entry exists
type CoinsService interface {
	// GetCoins returns one record per identifier present upstream, in the
	// order the identifiers were requested
	GetCoins(ctx context.Context, ids []string) ([]CoinRecord, CacheStatus, error)

	// Healthy reports whether at least one upstream fetch has succeeded
	Healthy() bool
}
