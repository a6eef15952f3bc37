package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/duetapp/duet/internal/auth"
)

// HandleWebSocket returns an HTTP handler that upgrades connections to
// WebSocket and runs them as Hub clients scoped to the caller's couple.
// It must be mounted behind the auth middleware.
func HandleWebSocket(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coupleID := auth.CoupleID(r.Context())
		if coupleID == 0 {
			http.Error(w, "no couple linked", http.StatusForbidden)
			return
		}

		conn, err := ws.Accept(w, r, nil)
		if err != nil {
			logger.Error("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, coupleID)
		client.Run(r.Context())
	}
}
