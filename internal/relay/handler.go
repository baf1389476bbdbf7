package relay

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// serverName is advertised in the handshake response.
const serverName = "websocket-chat"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: Implement proper origin checking in production
		return true
	},
}

// Handler upgrades HTTP requests and hands the resulting connections to a
// Hub.
type Handler struct {
	hub *Hub
}

// NewHandler creates a Handler attaching connections to hub.
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Hub returns the hub new sessions are attached to.
func (h *Handler) Hub() *Hub {
	return h.hub
}

// HandleConnection performs the WebSocket handshake and attaches the
// connection to the hub. A failed handshake rejects this connection only; a
// session is never registered before the handshake completes.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, http.Header{"Server": {serverName}})
	if err != nil {
		log.Printf("handshake error: %v", err)
		return err
	}

	if _, err := h.hub.Attach(conn); err != nil {
		conn.Close()
		return err
	}
	return nil
}
