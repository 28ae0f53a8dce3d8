package grid

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// handleConnect upgrades the client connection and pipes WebSocket frames
// between it and the target's DevTools endpoint. The upstream dial happens
// before the upgrade so dial failures still produce plain HTTP errors.
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "targetID")

	// Count the connection before the handshake completes so the idle
	// reaper cannot kill the target mid-upgrade.
	s.mu.Lock()
	gt, ok := s.targets[id]
	if ok {
		gt.connections++
	}
	s.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}
	defer s.disconnect(gt)

	upstream, _, err := websocket.DefaultDialer.DialContext(r.Context(), gt.target.Endpoint, nil)
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Errorf("failed to reach target: %w", err))
		return
	}
	defer upstream.Close()

	client, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own error response.
		return
	}
	defer client.Close()

	metricActiveConnections.Inc()
	defer metricActiveConnections.Dec()
	s.log.Infof("client connected to target %s", id)

	// First failure on either side tears the bridge down; the deferred
	// closes unblock the surviving pump.
	errc := make(chan error, 2)
	go pumpFrames(client, upstream, errc)
	go pumpFrames(upstream, client, errc)
	<-errc
	s.log.Infof("client disconnected from target %s", id)
}

// disconnect marks a client gone and restamps the target's idle clock.
func (s *Server) disconnect(gt *gridTarget) {
	s.mu.Lock()
	gt.connections--
	if gt.connections == 0 {
		gt.idleSince = time.Now()
	}
	s.mu.Unlock()
}

// pumpFrames copies WebSocket messages from src to dst until either side
// fails.
func pumpFrames(dst, src *websocket.Conn, errc chan<- error) {
	for {
		messageType, data, err := src.ReadMessage()
		if err != nil {
			errc <- err
			return
		}
		if err := dst.WriteMessage(messageType, data); err != nil {
			errc <- err
			return
		}
	}
}
