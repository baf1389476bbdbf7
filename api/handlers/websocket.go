// Package handlers provides HTTP API request handlers.
package handlers

import (
	"github.com/ZakiuC/websocket-chat/internal/relay"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler handles WebSocket attach requests for the chat relay.
type WebSocketHandler struct {
	relayHandler *relay.Handler
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(relayHandler *relay.Handler) *WebSocketHandler {
	return &WebSocketHandler{
		relayHandler: relayHandler,
	}
}

// Attach handles GET /ws - upgrades the request and joins the chat.
func (h *WebSocketHandler) Attach(c *gin.Context) {
	if err := h.relayHandler.HandleConnection(c.Writer, c.Request); err != nil {
		// The upgrader has already written the HTTP error response and the
		// relay has logged the failure; nothing was registered.
		return
	}
}

// RegisterRoutes registers the WebSocket handler routes on a Gin router.
func (h *WebSocketHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws", h.Attach)
}
