package rules

import (
	"agent_arena/internal/config"
	"agent_arena/internal/domain"
)

// MatchDraw is the sentinel CheckMatchWinner returns when max rounds are
// reached with every tiebreaker level.
const MatchDraw = "DRAW"

// Validation is the result of a move-diversity check. Violations are
// reported, never returned as errors; callers score them as forfeits.
type Validation struct {
	Valid     bool
	Violation *string
}

// DecideRoundWinner applies standard rock-paper-scissors dominance.
func DecideRoundWinner(moveA, moveB domain.Move) domain.RoundOutcome {
	if moveA == moveB {
		return domain.OutcomeDraw
	}
	if moveA.Beats(moveB) {
		return domain.OutcomeWinA
	}
	return domain.OutcomeWinB
}

// IsReadBonus reports whether the winning move also beats the opponent's
// previous-round move, rewarding a called repeat.
func IsReadBonus(winningMove domain.Move, opponentPrevMove *domain.Move) bool {
	if opponentPrevMove == nil {
		return false
	}
	return winningMove.Beats(*opponentPrevMove)
}

// ValidateMove checks the move against the agent's own history this match:
// at most MoveUseLimit uses total, fewer than ConsecutiveLimit in a row.
func ValidateMove(move domain.Move, history []domain.Move, r config.Rules) Validation {
	used := 0
	for _, m := range history {
		if m == move {
			used++
		}
	}
	if used >= r.MoveUseLimit {
		v := domain.ViolationMoveUseLimit
		return Validation{Violation: &v}
	}

	// Playing move now must not make ConsecutiveLimit identical moves in a row.
	run := 0
	for i := len(history) - 1; i >= 0 && history[i] == move; i-- {
		run++
	}
	if run >= r.ConsecutiveLimit-1 {
		v := domain.ViolationConsecutiveLimit
		return Validation{Violation: &v}
	}

	return Validation{Valid: true}
}

// CheckMatchWinner decides whether the match is over.
// Returns the winning agent id, MatchDraw, or "" to continue.
//
// A side wins outright once its points reach the threshold while leading.
// Both at threshold, or the forced conclusion at max rounds, cascade through
// points, then round wins, then draw.
func CheckMatchWinner(m *domain.Match, r config.Rules) string {
	threshold := r.WinThreshold

	if m.ScoreA >= threshold && m.ScoreB >= threshold {
		return cascade(m)
	}
	if m.ScoreA >= threshold && m.ScoreA > m.ScoreB {
		return m.AgentA
	}
	if m.ScoreB >= threshold && m.ScoreB > m.ScoreA {
		return m.AgentB
	}

	if m.CurrentRound >= m.MaxRounds {
		return cascade(m)
	}

	return ""
}

func cascade(m *domain.Match) string {
	if m.ScoreA > m.ScoreB {
		return m.AgentA
	}
	if m.ScoreB > m.ScoreA {
		return m.AgentB
	}
	if m.WinsA > m.WinsB {
		return m.AgentA
	}
	if m.WinsB > m.WinsA {
		return m.AgentB
	}
	return MatchDraw
}

// MoveHistory extracts one side's revealed moves from resolved rounds,
// skipping forfeited rounds where the move never surfaced.
func MoveHistory(rounds []*domain.Round, side string) []domain.Move {
	var out []domain.Move
	for _, rd := range rounds {
		var m *domain.Move
		if side == "A" {
			m = rd.MoveA
		} else {
			m = rd.MoveB
		}
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}
