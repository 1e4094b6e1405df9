package core

import (
	"context"
	"log"
	"os"

	"github.com/coinwatch/coins-proxy/api"
	"github.com/coinwatch/coins-proxy/cache"
	"github.com/coinwatch/coins-proxy/coins"
	"github.com/coinwatch/coins-proxy/config"
	"github.com/coinwatch/coins-proxy/queue"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// Create Cache service
	cacheService := cache.NewService(cfg.Cache)
	registry.Register(cacheService)

	// Create Coins service with cache dependency
	coinsService := coins.NewService(cacheService, cfg)
	registry.Register(coinsService)

	// Create background fetch queue draining into the coins service
	queueService := queue.NewService(coinsService, cfg.Queue.Workers, cfg.Queue.Size)
	registry.Register(queueService)

	jwtSecret, err := config.LoadJWTSecret(cfg.Auth.JWTSecretFile)
	if err != nil {
		return nil, err
	}
	if jwtSecret == "" {
		log.Printf("Warning: no JWT secret configured, API authentication is disabled")
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	// Create HTTP server and register it as a service
	server := api.New(port, coinsService, queueService, cacheService, jwtSecret)
	registry.Register(server)

	return registry, nil
}
