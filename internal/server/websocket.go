package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wakehub/wakehub/internal/logging"
)

const (
	// Time allowed to write a status payload to the peer
	writeWait = 10 * time.Second

	// Interval between status pushes
	statusPeriod = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Single-tenant LAN utility with no auth; same-origin checks would
	// only break the local UI.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStatusStream upgrades the connection and pushes bulk probe results
// until the client goes away. Each push is the same payload GET /api/status
// returns, so clients can use either surface interchangeably.
func (s *Server) handleStatusStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("Websocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	logging.Info("Status stream connected", zap.String("remote_addr", r.RemoteAddr))

	defer func() {
		_ = conn.Close()
		logging.Info("Status stream closed", zap.String("remote_addr", r.RemoteAddr))
	}()

	// Discard inbound messages but notice when the peer closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(statusPeriod)
	defer ticker.Stop()

	for {
		statuses := s.pool.ProbeAll(r.Context(), s.store.List())

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(statuses); err != nil {
			logging.Debug("Status stream write failed",
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			return
		}

		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
