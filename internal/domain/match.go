package domain

import "time"

// MatchStatus - lifecycle status, only ever moves forward
type MatchStatus string

const (
	MatchCreated  MatchStatus = "CREATED"
	MatchRunning  MatchStatus = "RUNNING"
	MatchFinished MatchStatus = "FINISHED"
	MatchArchived MatchStatus = "ARCHIVED"
)

// MatchPhase - current stage of the round lifecycle
type MatchPhase string

const (
	PhaseReadyCheck MatchPhase = "READY_CHECK"
	PhaseCommit     MatchPhase = "COMMIT"
	PhaseReveal     MatchPhase = "REVEAL"
	PhaseResult     MatchPhase = "RESULT"
	PhaseInterval   MatchPhase = "INTERVAL"
	PhaseFinished   MatchPhase = "FINISHED"
)

// Match - one RPS contest between two agents.
// Mutated exclusively by the arena scheduler; immutable once FINISHED
// except the late rating-delta annotation.
type Match struct {
	ID           string      `db:"id" json:"id"`
	AgentA       string      `db:"agent_a" json:"agent_a"`
	AgentB       string      `db:"agent_b" json:"agent_b"`
	Status       MatchStatus `db:"status" json:"status"`
	ScoreA       int         `db:"score_a" json:"score_a"`
	ScoreB       int         `db:"score_b" json:"score_b"`
	WinsA        int         `db:"wins_a" json:"wins_a"`
	WinsB        int         `db:"wins_b" json:"wins_b"`
	CurrentRound int         `db:"current_round" json:"current_round"`
	MaxRounds    int         `db:"max_rounds" json:"max_rounds"`
	WinnerID     *string     `db:"winner_id" json:"winner_id,omitempty"`

	ReadyA bool `db:"ready_a" json:"ready_a"`
	ReadyB bool `db:"ready_b" json:"ready_b"`

	CurrentPhase  MatchPhase `db:"current_phase" json:"current_phase"`
	PhaseDeadline *time.Time `db:"phase_deadline" json:"phase_deadline,omitempty"`

	// Rating deltas, annotated best-effort after the match finishes
	EloChangeA   *int       `db:"elo_change_a" json:"elo_change_a,omitempty"`
	EloChangeB   *int       `db:"elo_change_b" json:"elo_change_b,omitempty"`
	EloUpdatedAt *time.Time `db:"elo_updated_at" json:"elo_updated_at,omitempty"`

	StartedAt  time.Time  `db:"started_at" json:"started_at"`
	FinishedAt *time.Time `db:"finished_at" json:"finished_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// Participant reports whether agentID is one of the two contestants.
func (m *Match) Participant(agentID string) bool {
	return agentID == m.AgentA || agentID == m.AgentB
}

// Opponent returns the other side's agent id.
func (m *Match) Opponent(agentID string) string {
	if agentID == m.AgentA {
		return m.AgentB
	}
	return m.AgentA
}

// Terminal reports whether the match can no longer change.
func (m *Match) Terminal() bool {
	return m.Status == MatchFinished || m.Status == MatchArchived
}
