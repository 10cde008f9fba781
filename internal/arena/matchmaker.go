package arena

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"agent_arena/internal/config"
	"agent_arena/internal/domain"
	"agent_arena/internal/logger"
)

var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrAgentBusy     = errors.New("agent is already in a match")
	ErrAlreadyQueued = errors.New("agent is already waiting in the queue")
)

// Matchmaker pairs waiting agents strictly first-come first-served. No
// rating proximity, no preference, just join order.
type Matchmaker struct {
	store     *MemoryStore
	scheduler *Scheduler
	ruleset   config.Rules
	log       *slog.Logger
}

func NewMatchmaker(store *MemoryStore, scheduler *Scheduler, ruleset config.Rules) *Matchmaker {
	return &Matchmaker{
		store:     store,
		scheduler: scheduler,
		ruleset:   ruleset,
		log:       logger.With("component", "matchmaker"),
	}
}

// Enqueue puts an agent into the waiting pool and immediately attempts a
// pairing. Re-joining while already waiting is refused, as is joining
// mid-match.
func (mm *Matchmaker) Enqueue(agentID string) (*domain.QueueEntry, error) {
	agent, ok := mm.store.GetAgent(agentID)
	if !ok {
		return nil, ErrAgentNotFound
	}
	switch agent.Status {
	case domain.AgentMatched, domain.AgentInMatch:
		return nil, ErrAgentBusy
	}

	if existing, ok := mm.store.GetQueueEntry(agentID); ok && existing.Status == domain.QueueWaiting {
		return nil, ErrAlreadyQueued
	}

	now := time.Now()
	entry := &domain.QueueEntry{
		AgentID:  agentID,
		Status:   domain.QueueWaiting,
		JoinedAt: now,
	}
	mm.store.PutQueueEntry(entry)

	agent.Status = domain.AgentWaiting
	agent.UpdatedAt = now
	mm.store.PutAgent(agent)

	mm.log.Info("agent queued", "agent_id", agentID)

	if _, err := mm.TryMatch(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Leave withdraws a waiting agent. Agents already paired stay paired.
func (mm *Matchmaker) Leave(agentID string) error {
	entry, ok := mm.store.GetQueueEntry(agentID)
	if !ok || entry.Status != domain.QueueWaiting {
		return ErrAgentNotFound
	}

	entry.Status = domain.QueueExpired
	mm.store.PutQueueEntry(entry)

	if agent, ok := mm.store.GetAgent(agentID); ok {
		agent.Status = domain.AgentQualified
		agent.UpdatedAt = time.Now()
		mm.store.PutAgent(agent)
	}
	return nil
}

// Pairing is the outcome of one successful TryMatch.
type Pairing struct {
	MatchID string
	AgentA  string
	AgentB  string
}

// TryMatch pops the two longest-waiting entries and spins up their match.
// Returns nil with no error when fewer than two agents are waiting.
func (mm *Matchmaker) TryMatch() (*Pairing, error) {
	waiting := mm.store.ListWaiting()
	if len(waiting) < 2 {
		return nil, nil
	}

	entryA, entryB := waiting[0], waiting[1]
	now := time.Now()
	matchID := uuid.NewString()

	m := &domain.Match{
		ID:           matchID,
		AgentA:       entryA.AgentID,
		AgentB:       entryB.AgentID,
		Status:       domain.MatchCreated,
		MaxRounds:    mm.ruleset.MaxRounds,
		CurrentPhase: domain.PhaseReadyCheck,
		StartedAt:    now,
		CreatedAt:    now,
	}
	mm.store.PutMatch(m)

	entryA.Status = domain.QueueMatched
	entryB.Status = domain.QueueMatched
	mm.store.PutQueueEntry(entryA)
	mm.store.PutQueueEntry(entryB)

	mm.setMatched(entryA.AgentID, now)
	mm.setMatched(entryB.AgentID, now)

	if err := mm.scheduler.StartReadyCheck(matchID); err != nil {
		return nil, err
	}

	mm.log.Info("match paired", "match_id", matchID, "agent_a", entryA.AgentID, "agent_b", entryB.AgentID)
	return &Pairing{MatchID: matchID, AgentA: entryA.AgentID, AgentB: entryB.AgentID}, nil
}

func (mm *Matchmaker) setMatched(agentID string, now time.Time) {
	if agent, ok := mm.store.GetAgent(agentID); ok {
		agent.Status = domain.AgentMatched
		agent.UpdatedAt = now
		mm.store.PutAgent(agent)
	}
}
