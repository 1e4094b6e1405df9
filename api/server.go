package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coinwatch/coins-proxy/cache"
	"github.com/coinwatch/coins-proxy/coins"
	"github.com/coinwatch/coins-proxy/queue"
)

type Server struct {
	port         string
	coinsService *coins.Service
	queueService *queue.Service
	cacheService *cache.Service
	jwtSecret    string
	upgrader     websocket.Upgrader
	server       *http.Server
}

func New(port string, coinsService *coins.Service, queueService *queue.Service, cacheService *cache.Service, jwtSecret string) *Server {
	return &Server{
		port:         port,
		coinsService: coinsService,
		queueService: queueService,
		cacheService: cacheService,
		jwtSecret:    jwtSecret,
	}
}

// newRouter builds the HTTP routes; split out from Start so tests can
// exercise the full middleware chain without a listening socket
func (s *Server) newRouter() *mux.Router {
	router := mux.NewRouter()

	router.Handle("/coins", s.withAuth(s.instrument("coins", http.HandlerFunc(s.handleCoins)))).Methods("GET")
	router.Handle("/coins/stream", s.withAuth(http.HandlerFunc(s.handleCoinsStream))).Methods("GET")

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.newRouter(),
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}
