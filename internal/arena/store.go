package arena

import (
	"sort"
	"sync"

	"agent_arena/internal/domain"
	"agent_arena/internal/fairness"
)

// MemoryStore holds all live engine state: matches, rounds, commit and
// reveal records, agents, queue entries and rating history. The engine is
// deliberately non-durable; archival persistence is a downstream consumer
// of MATCH_FINISHED events.
//
// Matches are returned and stored by value copy so that only the scheduler
// ever mutates the live record.
type MemoryStore struct {
	mu      sync.RWMutex
	matches map[string]*domain.Match
	rounds  map[string][]*domain.Round
	commits map[string]*domain.CommitRecord
	reveals map[string]*domain.RevealRecord
	nonces  map[string]*fairness.NonceRegistry
	agents  map[string]*domain.Agent
	queue   map[string]*domain.QueueEntry
	ratings map[string][]*domain.EloRating
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		matches: make(map[string]*domain.Match),
		rounds:  make(map[string][]*domain.Round),
		commits: make(map[string]*domain.CommitRecord),
		reveals: make(map[string]*domain.RevealRecord),
		nonces:  make(map[string]*fairness.NonceRegistry),
		agents:  make(map[string]*domain.Agent),
		queue:   make(map[string]*domain.QueueEntry),
		ratings: make(map[string][]*domain.EloRating),
	}
}

func recordKey(matchID string, roundNo int, agentID string) string {
	return matchID + ":" + itoa(roundNo) + ":" + agentID
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// ============ MATCHES ============

func (s *MemoryStore) GetMatch(id string) (*domain.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, false
	}
	cp := *m
	return &cp, true
}

func (s *MemoryStore) PutMatch(m *domain.Match) {
	cp := *m
	s.mu.Lock()
	s.matches[m.ID] = &cp
	s.mu.Unlock()
}

// UpdateMatch applies fn to the live record under the write lock and
// returns a snapshot of the result. Read-modify-write sequences that must
// not interleave go through here instead of GetMatch/PutMatch, otherwise
// two concurrent writers can silently drop each other's fields.
func (s *MemoryStore) UpdateMatch(id string, fn func(*domain.Match)) (*domain.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, false
	}
	fn(m)
	cp := *m
	return &cp, true
}

// ActiveMatchFor finds the agent's current non-terminal match. This is how
// a freshly paired agent discovers where to send its ready signal.
func (s *MemoryStore) ActiveMatchFor(agentID string) (*domain.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.matches {
		if m.Participant(agentID) && !m.Terminal() {
			cp := *m
			return &cp, true
		}
	}
	return nil, false
}

// ============ ROUNDS ============

func (s *MemoryStore) Rounds(matchID string) []*domain.Round {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Round, len(s.rounds[matchID]))
	copy(out, s.rounds[matchID])
	return out
}

func (s *MemoryStore) AddRound(r *domain.Round) {
	s.mu.Lock()
	s.rounds[r.MatchID] = append(s.rounds[r.MatchID], r)
	s.mu.Unlock()
}

// ============ COMMIT / REVEAL RECORDS ============

func (s *MemoryStore) GetCommit(matchID string, roundNo int, agentID string) (*domain.CommitRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.commits[recordKey(matchID, roundNo, agentID)]
	if !ok {
		return nil, false
	}
	cp := *c
	return &cp, true
}

func (s *MemoryStore) PutCommit(c *domain.CommitRecord) {
	cp := *c
	s.mu.Lock()
	s.commits[recordKey(c.MatchID, c.RoundNo, c.AgentID)] = &cp
	s.mu.Unlock()
}

func (s *MemoryStore) GetReveal(matchID string, roundNo int, agentID string) (*domain.RevealRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reveals[recordKey(matchID, roundNo, agentID)]
	if !ok {
		return nil, false
	}
	cp := *r
	return &cp, true
}

func (s *MemoryStore) PutReveal(r *domain.RevealRecord) {
	cp := *r
	s.mu.Lock()
	s.reveals[recordKey(r.MatchID, r.RoundNo, r.AgentID)] = &cp
	s.mu.Unlock()
}

// Nonces returns the match-scoped anti-replay registry, creating it on
// first use. It lives as long as the store does.
func (s *MemoryStore) Nonces(matchID string) *fairness.NonceRegistry {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.nonces[matchID]
	if !ok {
		reg = fairness.NewNonceRegistry()
		s.nonces[matchID] = reg
	}
	return reg
}

// ============ AGENTS ============

func (s *MemoryStore) GetAgent(id string) (*domain.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agents[id]
	if !ok {
		return nil, false
	}
	cp := *a
	return &cp, true
}

func (s *MemoryStore) PutAgent(a *domain.Agent) {
	cp := *a
	s.mu.Lock()
	s.agents[a.ID] = &cp
	s.mu.Unlock()
}

func (s *MemoryStore) ListAgents() []*domain.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Elo > out[j].Elo })
	return out
}

// ============ MATCHMAKING QUEUE ============

func (s *MemoryStore) GetQueueEntry(agentID string) (*domain.QueueEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.queue[agentID]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

func (s *MemoryStore) PutQueueEntry(e *domain.QueueEntry) {
	cp := *e
	s.mu.Lock()
	s.queue[e.AgentID] = &cp
	s.mu.Unlock()
}

// ListWaiting returns WAITING entries sorted by join time, earliest first.
func (s *MemoryStore) ListWaiting() []*domain.QueueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.QueueEntry
	for _, e := range s.queue {
		if e.Status == domain.QueueWaiting {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out
}

// ============ RATING HISTORY ============

func (s *MemoryStore) AddRating(r *domain.EloRating) {
	cp := *r
	s.mu.Lock()
	s.ratings[r.AgentID] = append(s.ratings[r.AgentID], &cp)
	s.mu.Unlock()
}

// CurrentRating returns the newest rating entry for an agent, if any.
func (s *MemoryStore) CurrentRating(agentID string) (*domain.EloRating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hist := s.ratings[agentID]
	if len(hist) == 0 {
		return nil, false
	}
	cp := *hist[len(hist)-1]
	return &cp, true
}

// RatedMatchCount counts rating entries that came from real matches.
func (s *MemoryStore) RatedMatchCount(agentID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.ratings[agentID] {
		if r.MatchID != "" && r.MatchID != "ready_forfeit" {
			n++
		}
	}
	return n
}
