package engine

import (
	"time"

	"agent_arena/internal/domain"
)

// Event is the closed set of outbound match events. Each variant is a
// concrete struct; the unexported method keeps the set sealed so consumers
// can switch exhaustively.
type Event interface {
	EventType() string
	event()
}

type MatchStarted struct {
	MatchID string `json:"match_id"`
	AgentA  string `json:"agent_a"`
	AgentB  string `json:"agent_b"`
}

// RoundCommit is published when one side's commit lands.
type RoundCommit struct {
	MatchID string `json:"match_id"`
	RoundNo int    `json:"round_no"`
	AgentID string `json:"agent_id"`
}

type BothCommitted struct {
	MatchID        string    `json:"match_id"`
	RoundNo        int       `json:"round_no"`
	RevealDeadline time.Time `json:"reveal_deadline"`
}

// RoundStart opens a commit window for a round.
type RoundStart struct {
	MatchID        string    `json:"match_id"`
	RoundNo        int       `json:"round_no"`
	CommitDeadline time.Time `json:"commit_deadline"`
}

type RoundResult struct {
	MatchID    string              `json:"match_id"`
	RoundNo    int                 `json:"round_no"`
	Outcome    domain.RoundOutcome `json:"outcome"`
	PointsA    int                 `json:"points_a"`
	PointsB    int                 `json:"points_b"`
	ReadBonusA bool                `json:"read_bonus_a"`
	ReadBonusB bool                `json:"read_bonus_b"`
	ScoreA     int                 `json:"score_a"`
	ScoreB     int                 `json:"score_b"`
	MoveA      *domain.Move        `json:"move_a,omitempty"`
	MoveB      *domain.Move        `json:"move_b,omitempty"`
	WinnerID   *string             `json:"winner_id,omitempty"`
}

type MatchFinished struct {
	MatchID     string  `json:"match_id"`
	WinnerID    *string `json:"winner_id"` // nil on draw
	FinalScoreA int     `json:"final_score_a"`
	FinalScoreB int     `json:"final_score_b"`
	EloChangeA  *int    `json:"elo_change_a,omitempty"`
	EloChangeB  *int    `json:"elo_change_b,omitempty"`
}

type ReadyTimeout struct {
	MatchID string `json:"match_id"`
	ReadyA  bool   `json:"ready_a"`
	ReadyB  bool   `json:"ready_b"`
}

func (MatchStarted) EventType() string  { return "MATCH_STARTED" }
func (RoundCommit) EventType() string   { return "ROUND_COMMIT" }
func (BothCommitted) EventType() string { return "BOTH_COMMITTED" }
func (RoundStart) EventType() string    { return "ROUND_START" }
func (RoundResult) EventType() string   { return "ROUND_RESULT" }
func (MatchFinished) EventType() string { return "MATCH_FINISHED" }
func (ReadyTimeout) EventType() string  { return "READY_TIMEOUT" }

func (MatchStarted) event()  {}
func (RoundCommit) event()   {}
func (BothCommitted) event() {}
func (RoundStart) event()    {}
func (RoundResult) event()   {}
func (MatchFinished) event() {}
func (ReadyTimeout) event()  {}

// Sink receives events for fan-out to observers. Implementations must not
// block the caller for long; the scheduler publishes from its hot path.
type Sink interface {
	Publish(matchID string, events ...Event)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Publish(string, ...Event) {}

// MultiSink forwards every event to each member in order.
type MultiSink []Sink

func (ms MultiSink) Publish(matchID string, events ...Event) {
	for _, s := range ms {
		s.Publish(matchID, events...)
	}
}
