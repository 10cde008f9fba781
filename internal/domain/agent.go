package domain

import "time"

// AgentStatus - where an agent sits in the pairing pipeline
type AgentStatus string

const (
	AgentQualified AgentStatus = "QUALIFIED"
	AgentWaiting   AgentStatus = "WAITING"
	AgentMatched   AgentStatus = "MATCHED"
	AgentInMatch   AgentStatus = "IN_MATCH"
	AgentPostMatch AgentStatus = "POST_MATCH"
)

// Agent - a registered contestant. Owned by the agent store; the arena
// mutates status and rating as side effects.
type Agent struct {
	ID                  string      `db:"id" json:"id"`
	Name                string      `db:"name" json:"name"`
	Status              AgentStatus `db:"status" json:"status"`
	Elo                 int         `db:"elo" json:"elo"`
	ConsecutiveTimeouts int         `db:"consecutive_timeouts" json:"consecutive_timeouts"`
	CreatedAt           time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at" json:"updated_at"`
}

// EloRating - one entry in an agent's rating history
type EloRating struct {
	ID        string    `db:"id" json:"id"`
	AgentID   string    `db:"agent_id" json:"agent_id"`
	Rating    int       `db:"rating" json:"rating"`
	MatchID   string    `db:"match_id" json:"match_id"`
	Delta     int       `db:"delta" json:"delta"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// QueueStatus - matchmaking queue entry state
type QueueStatus string

const (
	QueueWaiting QueueStatus = "WAITING"
	QueueMatched QueueStatus = "MATCHED"
	QueueExpired QueueStatus = "EXPIRED"
)

// QueueEntry - one agent waiting for an opponent
type QueueEntry struct {
	AgentID  string      `db:"agent_id" json:"agent_id"`
	Status   QueueStatus `db:"status" json:"status"`
	JoinedAt time.Time   `db:"joined_at" json:"joined_at"`
}
