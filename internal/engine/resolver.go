package engine

import (
	"errors"
	"fmt"
	"time"

	"agent_arena/internal/config"
	"agent_arena/internal/domain"
	"agent_arena/internal/rules"
)

var (
	ErrMatchOver        = errors.New("match already finished")
	ErrMaxRoundsReached = errors.New("max rounds already reached")
)

// RoundInput carries both agents' revealed moves plus the optional
// predictions their commits were sealed with.
type RoundInput struct {
	MoveA       domain.Move
	MoveB       domain.Move
	PredictionA *domain.Move
	PredictionB *domain.Move
}

// Result is everything one resolved round produces. Match is an updated
// copy; the caller persists both and fans out the events.
type Result struct {
	Round  *domain.Round
	Match  *domain.Match
	Events []Event
}

// ProcessRound adjudicates one fully revealed round. Pure with respect to
// stores: it reads the given state and returns the next state.
//
// Invalid moves forfeit the round to the valid side at normal win points;
// both invalid draws it. A clean win pays read-bonus points instead of
// normal points when the winning move also beats the opponent's previous
// move. A correct commit prediction adds one more point on top unless the
// round drew.
func ProcessRound(m *domain.Match, prior []*domain.Round, in RoundInput, r config.Rules, now time.Time) (*Result, error) {
	if m.Terminal() {
		return nil, ErrMatchOver
	}
	if len(prior) >= m.MaxRounds {
		return nil, ErrMaxRoundsReached
	}

	next := *m
	roundNo := len(prior) + 1
	var events []Event

	if next.Status == domain.MatchCreated {
		next.Status = domain.MatchRunning
		next.StartedAt = now
		events = append(events, MatchStarted{MatchID: m.ID, AgentA: m.AgentA, AgentB: m.AgentB})
	}

	validationA := rules.ValidateMove(in.MoveA, rules.MoveHistory(prior, "A"), r)
	validationB := rules.ValidateMove(in.MoveB, rules.MoveHistory(prior, "B"), r)

	var (
		outcome    domain.RoundOutcome
		pointsA    int
		pointsB    int
		readBonusA bool
		readBonusB bool
	)

	switch {
	case !validationA.Valid && validationB.Valid:
		outcome = domain.OutcomeForfeitA
		pointsB = r.NormalWinPoints
	case validationA.Valid && !validationB.Valid:
		outcome = domain.OutcomeForfeitB
		pointsA = r.NormalWinPoints
	case !validationA.Valid && !validationB.Valid:
		outcome = domain.OutcomeDraw
	default:
		outcome = rules.DecideRoundWinner(in.MoveA, in.MoveB)

		var prevMoveA, prevMoveB *domain.Move
		if len(prior) > 0 {
			prevMoveA = prior[len(prior)-1].MoveA
			prevMoveB = prior[len(prior)-1].MoveB
		}

		if outcome == domain.OutcomeWinA {
			readBonusA = rules.IsReadBonus(in.MoveA, prevMoveB)
			pointsA = r.NormalWinPoints
			if readBonusA {
				pointsA = r.ReadBonusPoints
			}
		}
		if outcome == domain.OutcomeWinB {
			readBonusB = rules.IsReadBonus(in.MoveB, prevMoveA)
			pointsB = r.NormalWinPoints
			if readBonusB {
				pointsB = r.ReadBonusPoints
			}
		}
	}

	// Prediction bonus: declared in the commit, paid when the opponent's
	// revealed move matches and the round did not draw. Stacks with the
	// history-based bonus above.
	if outcome != domain.OutcomeDraw {
		if in.PredictionA != nil && *in.PredictionA == in.MoveB {
			pointsA++
			readBonusA = true
		}
		if in.PredictionB != nil && *in.PredictionB == in.MoveA {
			pointsB++
			readBonusB = true
		}
	}

	moveA, moveB := in.MoveA, in.MoveB
	round := &domain.Round{
		ID:         fmt.Sprintf("round_%s_%d", m.ID, roundNo),
		MatchID:    m.ID,
		RoundNo:    roundNo,
		MoveA:      &moveA,
		MoveB:      &moveB,
		Outcome:    outcome,
		PointsA:    pointsA,
		PointsB:    pointsB,
		ReadBonusA: readBonusA,
		ReadBonusB: readBonusB,
		ViolationA: validationA.Violation,
		ViolationB: validationB.Violation,
		JudgedAt:   now,
		CreatedAt:  now,
	}

	next.ScoreA += pointsA
	next.ScoreB += pointsB
	if outcome == domain.OutcomeWinA || outcome == domain.OutcomeForfeitB {
		next.WinsA++
	}
	if outcome == domain.OutcomeWinB || outcome == domain.OutcomeForfeitA {
		next.WinsB++
	}
	next.CurrentRound = roundNo

	winner := rules.CheckMatchWinner(&next, r)
	if winner != "" {
		next.Status = domain.MatchFinished
		next.CurrentPhase = domain.PhaseFinished
		finishedAt := now
		next.FinishedAt = &finishedAt
		if winner != rules.MatchDraw {
			w := winner
			next.WinnerID = &w
		}
	}

	events = append(events, RoundResult{
		MatchID:    m.ID,
		RoundNo:    roundNo,
		Outcome:    outcome,
		PointsA:    pointsA,
		PointsB:    pointsB,
		ReadBonusA: readBonusA,
		ReadBonusB: readBonusB,
		ScoreA:     next.ScoreA,
		ScoreB:     next.ScoreB,
		MoveA:      &moveA,
		MoveB:      &moveB,
		WinnerID:   roundWinner(m, outcome),
	})

	if winner != "" {
		events = append(events, MatchFinished{
			MatchID:     m.ID,
			WinnerID:    next.WinnerID,
			FinalScoreA: next.ScoreA,
			FinalScoreB: next.ScoreB,
		})
	}

	return &Result{Round: round, Match: &next, Events: events}, nil
}

func roundWinner(m *domain.Match, outcome domain.RoundOutcome) *string {
	switch outcome {
	case domain.OutcomeWinA, domain.OutcomeForfeitB:
		return &m.AgentA
	case domain.OutcomeWinB, domain.OutcomeForfeitA:
		return &m.AgentB
	}
	return nil
}
