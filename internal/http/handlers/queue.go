package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JoinQueue enters the calling agent into the matchmaking pool. Pairing
// happens inline when a second agent is already waiting.
func (h *Handler) JoinQueue(c *gin.Context) {
	agentID, ok := getAgentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entry, err := h.Matchmaker.Enqueue(agentID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"queue": entry})
}

// LeaveQueue withdraws a waiting agent.
func (h *Handler) LeaveQueue(c *gin.Context) {
	agentID, ok := getAgentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Matchmaker.Leave(agentID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "left"})
}

// QueueStatus reports the calling agent's queue entry.
func (h *Handler) QueueStatus(c *gin.Context) {
	agentID, ok := getAgentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entry, found := h.Store.GetQueueEntry(agentID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not in queue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"queue": entry})
}
