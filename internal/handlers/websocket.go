package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/services"
)

// WebSocketHandler attaches the client to the reminder event feed.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		services.HandleWebSocket(hub, c.Writer, c.Request)
	}
}
