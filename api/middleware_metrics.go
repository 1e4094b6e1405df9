package api

import (
	"net/http"
	"time"

	"github.com/coinwatch/coins-proxy/metrics"
)

// instrument records request latency for an endpoint
func (s *Server) instrument(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		metrics.RecordRequestLatency(endpoint, time.Since(start))
	})
}
