package coingecko

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/coinwatch/coins-proxy/config"
	"github.com/coinwatch/coins-proxy/interfaces"
)

// APIClient defines the capability of retrieving coin records for a list of
// identifiers. The only implemented variant performs a direct network
// request; further retrieval strategies plug in behind the same contract.
type APIClient interface {
	// FetchCoins fetches records for the given coin identifiers
	FetchCoins(ctx context.Context, ids []string) ([]interfaces.CoinRecord, error)
	// Healthy checks if the API has had at least one successful fetch
	Healthy() bool
}

// Client implements APIClient against the CoinGecko HTTP API
type Client struct {
	config          *config.Config
	httpClient      *HTTPClient
	successfulFetch atomic.Bool // Flag indicating if at least one fetch was successful
}

// NewClient creates a new CoinGecko API client
func NewClient(cfg *config.Config, handler IHttpStatusHandler) *Client {
	opts := DefaultClientOptions()
	opts.LogPrefix = "CoinGecko"
	if cfg.Coins.ConnectionTimeout > 0 {
		opts.ConnectionTimeout = cfg.Coins.ConnectionTimeout
	}
	if cfg.Coins.RequestTimeout > 0 {
		opts.RequestTimeout = cfg.Coins.RequestTimeout
	}

	return &Client{
		config:     cfg,
		httpClient: NewHTTPClient(opts, handler),
	}
}

// Healthy checks if the API has had at least one successful fetch
func (c *Client) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchCoins performs one GET against the coins endpoint and transforms the
// response, an object keyed by coin id, into ordered records
func (c *Client) FetchCoins(ctx context.Context, ids []string) ([]interfaces.CoinRecord, error) {
	request, err := NewCoinsRequestBuilder(c.baseURL()).
		WithIds(ids).
		Build()
	if err != nil {
		return nil, err
	}
	request = request.WithContext(ctx)

	body, requestDuration, err := c.httpClient.ExecuteRequest(request)
	if err != nil {
		return nil, err
	}

	records, err := parseCoins(body, ids)
	if err != nil {
		log.Printf("CoinGecko: Error parsing coins response: %v", err)
		return nil, err
	}

	log.Printf("CoinGecko: Successfully fetched %d records for %d identifiers in %.2fs",
		len(records), len(ids), requestDuration.Seconds())

	c.successfulFetch.Store(true)

	return records, nil
}

// baseURL returns the configured upstream base URL
func (c *Client) baseURL() string {
	if c.config != nil && c.config.OverrideCoingeckoURL != "" {
		return c.config.OverrideCoingeckoURL
	}
	return COINGECKO_DEFAULT_URL
}

// parseCoins decodes the upstream payload into records. Records follow the
// requested identifier order; identifiers absent upstream are skipped.
func parseCoins(body []byte, ids []string) ([]interfaces.CoinRecord, error) {
	var payload map[string]CoinData
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &MalformedResponseError{Reason: "invalid JSON", Err: err}
	}

	records := make([]interfaces.CoinRecord, 0, len(payload))
	for _, id := range ids {
		entry, found := payload[id]
		if !found {
			continue
		}

		record, err := entry.toRecord(id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
