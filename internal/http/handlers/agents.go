package handlers

import (
	"net/http"
	"time"

	"agent_arena/internal/domain"
	"agent_arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name string `json:"name" binding:"required"`
}

// Register creates an agent and issues its bearer token.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	now := time.Now()
	agent := &domain.Agent{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Status:    domain.AgentQualified,
		Elo:       1200,
		CreatedAt: now,
		UpdatedAt: now,
	}
	h.Store.PutAgent(agent)

	token, err := service.GenerateJWT(agent.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"agent": agent,
		"token": token,
	})
}

// Me returns the calling agent's record.
func (h *Handler) Me(c *gin.Context) {
	agentID, ok := getAgentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	agent, found := h.Store.GetAgent(agentID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}
	c.JSON(http.StatusOK, agent)
}
