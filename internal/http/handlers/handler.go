package handlers

import (
	"errors"
	"net/http"

	"agent_arena/internal/arena"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Store      *arena.MemoryStore
	Scheduler  *arena.Scheduler
	Matchmaker *arena.Matchmaker
}

func NewHandler(store *arena.MemoryStore, scheduler *arena.Scheduler, matchmaker *arena.Matchmaker) *Handler {
	return &Handler{
		Store:      store,
		Scheduler:  scheduler,
		Matchmaker: matchmaker,
	}
}

// getAgentID reads the agent identity set by the JWT middleware.
func getAgentID(c *gin.Context) (string, bool) {
	v, ok := c.Get("agent_id")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// fail maps arena errors onto HTTP statuses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, arena.ErrMatchNotFound),
		errors.Is(err, arena.ErrAgentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, arena.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, arena.ErrWrongPhase),
		errors.Is(err, arena.ErrWrongRound),
		errors.Is(err, arena.ErrNoCommit),
		errors.Is(err, arena.ErrDuplicateCommit),
		errors.Is(err, arena.ErrDuplicateReveal),
		errors.Is(err, arena.ErrReplayedReveal),
		errors.Is(err, arena.ErrAgentBusy),
		errors.Is(err, arena.ErrAlreadyQueued):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
