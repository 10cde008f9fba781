package service

import (
	"context"
	"log/slog"
	"time"

	"agent_arena/internal/arena"
	"agent_arena/internal/engine"
	"agent_arena/internal/logger"
	"agent_arena/internal/repository"
)

// Archiver persists finished matches to Postgres. It watches the event
// stream and copies the final snapshot out of the live store; the engine
// never waits on it and never learns about its failures.
type Archiver struct {
	store   *arena.MemoryStore
	matches *repository.MatchRepository
	agents  *repository.AgentRepository
	ratings *repository.RatingRepository
	log     *slog.Logger
}

func NewArchiver(store *arena.MemoryStore, matches *repository.MatchRepository, agents *repository.AgentRepository, ratings *repository.RatingRepository) *Archiver {
	return &Archiver{
		store:   store,
		matches: matches,
		agents:  agents,
		ratings: ratings,
		log:     logger.With("component", "archiver"),
	}
}

// Publish implements the event sink. Only the finish event matters here.
func (a *Archiver) Publish(matchID string, events ...engine.Event) {
	for _, e := range events {
		if _, ok := e.(engine.MatchFinished); ok {
			go a.archive(matchID)
			return
		}
	}
}

func (a *Archiver) archive(matchID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	m, ok := a.store.GetMatch(matchID)
	if !ok {
		a.log.Warn("finished match missing from store", "match_id", matchID)
		return
	}

	if err := a.matches.Archive(ctx, m, a.store.Rounds(matchID)); err != nil {
		a.log.Error("match archive failed", "match_id", matchID, "error", err)
		return
	}

	for _, agentID := range []string{m.AgentA, m.AgentB} {
		if agent, ok := a.store.GetAgent(agentID); ok {
			if err := a.agents.Upsert(ctx, agent); err != nil {
				a.log.Error("agent snapshot failed", "agent_id", agentID, "error", err)
			}
		}
		if entry, ok := a.store.CurrentRating(agentID); ok && entry.MatchID == matchID {
			if err := a.ratings.Insert(ctx, entry); err != nil {
				a.log.Error("rating history write failed", "agent_id", agentID, "error", err)
			}
		}
	}

	a.log.Info("match archived", "match_id", matchID)
}
