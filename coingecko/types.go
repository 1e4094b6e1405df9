package coingecko

import (
	"fmt"

	"github.com/coinwatch/coins-proxy/interfaces"
)

// CoinData is a single entry of the upstream coins response.
// Pointer fields distinguish absent fields from zero values.
type CoinData struct {
	Name                     *string  `json:"name"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}

// toRecord converts an upstream entry into a CoinRecord.
// Any absent field makes the whole response malformed, there is no
// partial-record tolerance.
func (d CoinData) toRecord(id string) (interfaces.CoinRecord, error) {
	var missing string
	switch {
	case d.Name == nil:
		missing = "name"
	case d.CurrentPrice == nil:
		missing = "current_price"
	case d.MarketCap == nil:
		missing = "market_cap"
	case d.PriceChangePercentage24h == nil:
		missing = "price_change_percentage_24h"
	}
	if missing != "" {
		return interfaces.CoinRecord{}, &MalformedResponseError{
			Reason: fmt.Sprintf("entry %q is missing field %q", id, missing),
		}
	}

	return interfaces.CoinRecord{
		Name:      *d.Name,
		Price:     *d.CurrentPrice,
		MarketCap: *d.MarketCap,
		Change24h: *d.PriceChangePercentage24h,
	}, nil
}
