package handlers

import (
	"net/http"
	"os"

	"agent_arena/internal/logger"
	"agent_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades a spectator connection for one match's event stream.
// Spectating is public; no token required.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID := c.Query("match_id")
		if matchID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "match_id required"})
			return
		}
		if _, found := h.Store.GetMatch(matchID); !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "match_id", matchID, "error", err)
			return
		}

		client := ws.NewClient(matchID, conn, hub)
		go client.Run()
	}
}
