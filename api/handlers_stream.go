package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/coinwatch/coins-proxy/interfaces"
)

// StreamMessage is a single WebSocket frame with the records of one warm set
type StreamMessage struct {
	Identifiers []string                `json:"identifiers"`
	Records     []interfaces.CoinRecord `json:"records"`
}

// handleCoinsStream upgrades the connection to a WebSocket and pushes the
// configured warm sets on connect and after every refresh cycle
func (s *Server) handleCoinsStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Stream: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := s.coinsService.SubscribeUpdates()
	defer sub.Cancel()

	// Drain client frames to detect disconnects
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.pushWarmSets(r.Context(), conn); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-done:
			return
		case <-sub.Chan():
			if err := s.pushWarmSets(r.Context(), conn); err != nil {
				return
			}
		}
	}
}

// pushWarmSets writes one frame per warm set; entries are served from the
// cache the refresher just repopulated
func (s *Server) pushWarmSets(ctx context.Context, conn *websocket.Conn) error {
	for _, ids := range s.coinsService.WarmSets() {
		records, _, err := s.coinsService.GetCoins(ctx, ids)
		if err != nil {
			log.Printf("Stream: fetch failed for %v: %v", ids, err)
			continue
		}

		message := StreamMessage{Identifiers: ids, Records: records}
		if err := conn.WriteJSON(message); err != nil {
			return err
		}
	}
	return nil
}
