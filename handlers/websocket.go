package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/middleware"
	"github.com/dota-journal/match-journal/backend/websocket"
)

// WebSocketHandler handles WebSocket upgrade requests
type WebSocketHandler struct {
	hub *websocket.Hub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Serve upgrades the connection and registers it with the hub. Auth
// runs before the upgrade via the token query parameter.
// GET /api/v1/ws
func (h *WebSocketHandler) Serve(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Not authenticated",
		})
		return
	}

	websocket.ServeWS(h.hub, c.Writer, c.Request, claims.UserID, claims.SteamID, claims.Username)
}
