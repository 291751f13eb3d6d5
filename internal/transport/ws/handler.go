package ws

import (
	"context"
	"net/http"

	"github.com/vedran77/circle/internal/domain"
	"nhooyr.io/websocket"
)

// Authenticator resolves a token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// ServeWS returns an HTTP handler that upgrades to WebSocket.
// Auth is done via ?token=xxx query param (WebSocket can't send headers).
// The handler stays on the read loop until the connection ends.
func ServeWS(hub *Hub, authn Authenticator, viewer Viewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		user, err := authn.Authenticate(r.Context(), tokenStr)
		if err != nil {
			if domain.KindOf(err) == domain.KindUnauthenticated {
				http.Error(w, "invalid token", http.StatusUnauthorized)
			} else {
				hub.logger.ErrorContext(r.Context(), "ws authenticate", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			hub.logger.Debug("ws accept", "error", err)
			return
		}

		client := NewClient(hub, conn, user, viewer)
		if !hub.join(client) {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}

		ctx := r.Context()
		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}
}
