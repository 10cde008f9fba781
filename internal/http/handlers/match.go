package handlers

import (
	"net/http"
	"strconv"

	"agent_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

// Ready records the calling agent's ready signal for a match.
func (h *Handler) Ready(c *gin.Context) {
	agentID, ok := getAgentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.Scheduler.MarkReady(c.Param("id"), agentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": m})
}

type CommitRequest struct {
	CommitHash string       `json:"commit_hash" binding:"required"`
	Prediction *domain.Move `json:"prediction,omitempty"`
}

// Commit stores the agent's sealed move for the round in the URL.
func (h *Handler) Commit(c *gin.Context) {
	agentID, ok := getAgentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	roundNo, err := strconv.Atoi(c.Param("no"))
	if err != nil || roundNo < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid round number"})
		return
	}

	var req CommitRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Prediction != nil && !req.Prediction.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prediction"})
		return
	}

	record, err := h.Scheduler.SubmitCommit(c.Param("id"), roundNo, agentID, req.CommitHash, req.Prediction)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"round_no":     record.RoundNo,
		"committed_at": record.CommittedAt,
		"expires_at":   record.ExpiresAt,
	})
}

type RevealRequest struct {
	Move domain.Move `json:"move" binding:"required"`
	Salt string      `json:"salt" binding:"required"`
}

// Reveal discloses the agent's move and salt. A hash mismatch is reported
// in-band: the round resolves against the caller.
func (h *Handler) Reveal(c *gin.Context) {
	agentID, ok := getAgentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	roundNo, err := strconv.Atoi(c.Param("no"))
	if err != nil || roundNo < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid round number"})
		return
	}

	var req RevealRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if !req.Move.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid move"})
		return
	}

	record, err := h.Scheduler.SubmitReveal(c.Param("id"), roundNo, agentID, req.Move, req.Salt)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"round_no":    record.RoundNo,
		"verified":    record.Verified,
		"revealed_at": record.RevealedAt,
	})
}

// CurrentMatch returns the calling agent's active match, the discovery
// step after queue pairing.
func (h *Handler) CurrentMatch(c *gin.Context) {
	agentID, ok := getAgentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, found := h.Store.ActiveMatchFor(agentID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active match"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": m})
}

// GetMatch returns the live match snapshot with its resolved rounds.
func (h *Handler) GetMatch(c *gin.Context) {
	m, found := h.Store.GetMatch(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match":  m,
		"rounds": h.Store.Rounds(m.ID),
	})
}
