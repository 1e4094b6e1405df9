package config

import "time"

// CoinsFetcher represents configuration for the coins fetch-or-cache service
type CoinsFetcher struct {
	// CacheTimeout is the TTL for cached coin data, 1 hour when unset
	CacheTimeout time.Duration `yaml:"cache_timeout"`

	// ConnectionTimeout limits establishing the connection to the upstream API
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`

	// RequestTimeout limits the whole upstream request including body read
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// RefreshSets lists identifier sets the periodic updater keeps warm
	RefreshSets [][]string `yaml:"refresh_sets"`

	// RefreshInterval is the period between warm set refresh cycles
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}
