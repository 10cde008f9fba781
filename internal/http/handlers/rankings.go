package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Rankings returns agents ordered by rating, strongest first.
func (h *Handler) Rankings(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	agents := h.Store.ListAgents()
	if len(agents) > limit {
		agents = agents[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"rankings": agents})
}

// RatingHistory returns one agent's rating trail, newest first.
func (h *Handler) RatingHistory(c *gin.Context) {
	agentID := c.Param("id")
	if _, found := h.Store.GetAgent(agentID); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}

	entry, found := h.Store.CurrentRating(agentID)
	if !found {
		c.JSON(http.StatusOK, gin.H{"history": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current": entry, "rated_matches": h.Store.RatedMatchCount(agentID)})
}
