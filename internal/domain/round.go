package domain

import "time"

// Move - one of the three RPS moves, stored uppercase
type Move string

const (
	MoveRock     Move = "ROCK"
	MovePaper    Move = "PAPER"
	MoveScissors Move = "SCISSORS"
)

// Valid reports whether m is one of the three known moves.
func (m Move) Valid() bool {
	return m == MoveRock || m == MovePaper || m == MoveScissors
}

// Beats reports whether m wins against other under standard dominance.
func (m Move) Beats(other Move) bool {
	switch m {
	case MoveRock:
		return other == MoveScissors
	case MovePaper:
		return other == MoveRock
	case MoveScissors:
		return other == MovePaper
	}
	return false
}

// RoundOutcome - who took the round
type RoundOutcome string

const (
	OutcomeWinA     RoundOutcome = "WIN_A"
	OutcomeWinB     RoundOutcome = "WIN_B"
	OutcomeDraw     RoundOutcome = "DRAW"
	OutcomeForfeitA RoundOutcome = "FORFEIT_A"
	OutcomeForfeitB RoundOutcome = "FORFEIT_B"
)

// Violation tags recorded on forfeited sides
const (
	ViolationMoveUseLimit     = "MOVE_USE_LIMIT"
	ViolationConsecutiveLimit = "CONSECUTIVE_LIMIT"
	ViolationCommitTimeout    = "COMMIT_TIMEOUT"
	ViolationRevealTimeout    = "REVEAL_TIMEOUT"
	ViolationHashMismatch     = "HASH_MISMATCH"
)

// Round - one resolved round. Never mutated once created; at most one
// per (matchID, roundNo).
type Round struct {
	ID         string       `db:"id" json:"id"`
	MatchID    string       `db:"match_id" json:"match_id"`
	RoundNo    int          `db:"round_no" json:"round_no"` // 1-based, contiguous
	MoveA      *Move        `db:"move_a" json:"move_a,omitempty"`
	MoveB      *Move        `db:"move_b" json:"move_b,omitempty"`
	Outcome    RoundOutcome `db:"outcome" json:"outcome"`
	PointsA    int          `db:"points_a" json:"points_a"`
	PointsB    int          `db:"points_b" json:"points_b"`
	ReadBonusA bool         `db:"read_bonus_a" json:"read_bonus_a"`
	ReadBonusB bool         `db:"read_bonus_b" json:"read_bonus_b"`
	ViolationA *string      `db:"violation_a" json:"violation_a,omitempty"`
	ViolationB *string      `db:"violation_b" json:"violation_b,omitempty"`
	JudgedAt   time.Time    `db:"judged_at" json:"judged_at"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}

// CommitRecord - one agent's sealed move for one round. Immutable after
// creation except the optional late-bound prediction.
type CommitRecord struct {
	MatchID     string    `db:"match_id" json:"match_id"`
	RoundNo     int       `db:"round_no" json:"round_no"`
	AgentID     string    `db:"agent_id" json:"agent_id"`
	CommitHash  string    `db:"commit_hash" json:"commit_hash"`
	Prediction  *Move     `db:"prediction" json:"prediction,omitempty"`
	CommittedAt time.Time `db:"committed_at" json:"committed_at"`
	ExpiresAt   time.Time `db:"expires_at" json:"expires_at"`
}

// RevealRecord - one agent's disclosed move and salt for one round.
// Verified is set only after the commit hash checks out.
type RevealRecord struct {
	MatchID    string    `db:"match_id" json:"match_id"`
	RoundNo    int       `db:"round_no" json:"round_no"`
	AgentID    string    `db:"agent_id" json:"agent_id"`
	Move       Move      `db:"move" json:"move"`
	Salt       string    `db:"salt" json:"salt"`
	Verified   bool      `db:"verified" json:"verified"`
	RevealedAt time.Time `db:"revealed_at" json:"revealed_at"`
}
