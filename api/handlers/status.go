package handlers

import (
	"net/http"

	"github.com/ZakiuC/websocket-chat/internal/relay"
	"github.com/gin-gonic/gin"
)

// StatusHandler serves health and live-session statistics.
type StatusHandler struct {
	hub *relay.Hub
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(hub *relay.Hub) *StatusHandler {
	return &StatusHandler{
		hub: hub,
	}
}

// Health handles GET /health.
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Stats handles GET /stats - reports the current live-session count.
func (h *StatusHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"clients": h.hub.SessionCount(),
	})
}

// RegisterRoutes registers the status routes on a Gin router.
func (h *StatusHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/stats", h.Stats)
}
