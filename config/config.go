package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coinwatch/coins-proxy/cache"
)

type Config struct {
	Port string `yaml:"port"`

	Coins CoinsFetcher `yaml:"coins"`
	Cache cache.Config `yaml:"cache"`
	Queue QueueConfig  `yaml:"queue"`
	Auth  AuthConfig   `yaml:"auth"`

	// OverrideCoingeckoURL replaces the default upstream base URL,
	// used in tests and for self-hosted mirrors
	OverrideCoingeckoURL string `yaml:"override_coingecko_url"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
