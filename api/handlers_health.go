package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"coins": "unknown",
		"cache": "unknown",
	}

	if s.coinsService != nil && s.coinsService.Healthy() {
		services["coins"] = "up"
	}

	status := map[string]interface{}{
		"status":   "ok",
		"services": services,
	}

	if s.cacheService != nil {
		stats := s.cacheService.Stats()
		services["cache"] = "up"
		status["cache_items"] = stats.Items
	}

	if s.queueService != nil {
		status["queue_pending"] = s.queueService.Pending()
	}

	s.sendJSONResponse(w, status)
}
