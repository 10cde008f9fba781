package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"agent_arena/internal/engine"
	"agent_arena/internal/logger"
)

// Frame is one outbound spectator message.
type Frame struct {
	Type    string       `json:"type"`
	MatchID string       `json:"match_id"`
	Data    engine.Event `json:"data"`
	Ts      time.Time    `json:"ts"`
}

// Hub fans engine events out to spectators. Clients subscribe to a single
// match; the scheduler publishes through the sink interface and never
// blocks on a slow consumer, slow clients just drop frames.
type Hub struct {
	mu      sync.RWMutex
	matches map[string]map[*Client]struct{}
	log     *slog.Logger
}

func NewHub() *Hub {
	return &Hub{
		matches: make(map[string]map[*Client]struct{}),
		log:     logger.With("component", "ws_hub"),
	}
}

// Publish implements the engine sink: every event becomes one JSON frame
// broadcast to the match's spectators.
func (h *Hub) Publish(matchID string, events ...engine.Event) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.matches[matchID]))
	for c := range h.matches[matchID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	for _, e := range events {
		payload, err := json.Marshal(Frame{
			Type:    e.EventType(),
			MatchID: matchID,
			Data:    e,
			Ts:      time.Now().UTC(),
		})
		if err != nil {
			h.log.Error("frame marshal failed", "match_id", matchID, "event", e.EventType(), "error", err)
			continue
		}
		for _, c := range clients {
			select {
			case c.send <- payload:
			default:
				// Spectator too slow, drop the frame rather than stall.
			}
		}
	}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	room, ok := h.matches[c.matchID]
	if !ok {
		room = make(map[*Client]struct{})
		h.matches[c.matchID] = room
	}
	room[c] = struct{}{}
	n := len(room)
	h.mu.Unlock()

	h.log.Info("spectator joined", "match_id", c.matchID, "spectators", n)
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	if room, ok := h.matches[c.matchID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.matches, c.matchID)
		}
	}
	h.mu.Unlock()
}

// Spectators reports the audience size for one match.
func (h *Hub) Spectators(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.matches[matchID])
}
