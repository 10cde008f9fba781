package ranking

import (
	"context"
	"fmt"
	"time"

	"agent_arena/internal/domain"
	"agent_arena/internal/logger"
)

// Store is the slice of agent/rating state the updater needs. The arena's
// in-memory store satisfies it.
type Store interface {
	GetAgent(id string) (*domain.Agent, bool)
	PutAgent(a *domain.Agent)
	CurrentRating(agentID string) (*domain.EloRating, bool)
	RatedMatchCount(agentID string) int
	AddRating(r *domain.EloRating)
}

// Updater applies rating changes after matches. It is invoked by the
// scheduler as a post-match callback and never sits on the finalization
// path.
type Updater struct {
	store Store
	cfg   EloConfig
}

func NewUpdater(store Store) *Updater {
	return &Updater{store: store, cfg: DefaultEloConfig()}
}

// ApplyMatchRatings computes and records both sides' new ratings for a
// finished match. K is the rounded average of each side's own K factor
// (32 under the new-agent threshold, 16 after).
func (u *Updater) ApplyMatchRatings(ctx context.Context, m *domain.Match) (deltaA, deltaB int, err error) {
	if m.Status != domain.MatchFinished && m.Status != domain.MatchArchived {
		return 0, 0, fmt.Errorf("match %s not finished", m.ID)
	}
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	ratingA := u.currentOrDefault(m.AgentA)
	ratingB := u.currentOrDefault(m.AgentB)

	kA := u.kFactor(m.AgentA)
	kB := u.kFactor(m.AgentB)
	effectiveK := (kA + kB + 1) / 2

	deltaA, deltaB = CalculateEloChange(ratingA, ratingB, DeriveScore(m), effectiveK)

	now := time.Now()
	u.store.AddRating(&domain.EloRating{
		ID:        fmt.Sprintf("elo_%s_%s", m.ID, m.AgentA),
		AgentID:   m.AgentA,
		Rating:    ratingA + deltaA,
		MatchID:   m.ID,
		Delta:     deltaA,
		UpdatedAt: now,
	})
	u.store.AddRating(&domain.EloRating{
		ID:        fmt.Sprintf("elo_%s_%s", m.ID, m.AgentB),
		AgentID:   m.AgentB,
		Rating:    ratingB + deltaB,
		MatchID:   m.ID,
		Delta:     deltaB,
		UpdatedAt: now,
	})

	u.bumpAgentElo(m.AgentA, ratingA+deltaA)
	u.bumpAgentElo(m.AgentB, ratingB+deltaB)

	return deltaA, deltaB, nil
}

// ApplyReadyForfeit records the fixed ready-timeout penalty directly,
// bypassing the rating formula.
func (u *Updater) ApplyReadyForfeit(agentID string, delta int) {
	current := u.currentOrDefault(agentID)

	u.store.AddRating(&domain.EloRating{
		ID:        fmt.Sprintf("elo_forfeit_%s_%d", agentID, time.Now().UnixNano()),
		AgentID:   agentID,
		Rating:    current + delta,
		MatchID:   "ready_forfeit",
		Delta:     delta,
		UpdatedAt: time.Now(),
	})

	agent, ok := u.store.GetAgent(agentID)
	if !ok {
		logger.Warn("ready forfeit for unknown agent", "agent_id", agentID)
		return
	}
	agent.Elo = current + delta
	agent.ConsecutiveTimeouts++
	agent.UpdatedAt = time.Now()
	u.store.PutAgent(agent)
}

func (u *Updater) currentOrDefault(agentID string) int {
	if r, ok := u.store.CurrentRating(agentID); ok {
		return r.Rating
	}
	if a, ok := u.store.GetAgent(agentID); ok && a.Elo != 0 {
		return a.Elo
	}
	return u.cfg.DefaultRating
}

func (u *Updater) kFactor(agentID string) int {
	if u.store.RatedMatchCount(agentID) < u.cfg.NewAgentThresholdGames {
		return u.cfg.NewAgentKFactor
	}
	return u.cfg.EstablishedKFactor
}

func (u *Updater) bumpAgentElo(agentID string, rating int) {
	agent, ok := u.store.GetAgent(agentID)
	if !ok {
		return
	}
	agent.Elo = rating
	agent.UpdatedAt = time.Now()
	u.store.PutAgent(agent)
}
