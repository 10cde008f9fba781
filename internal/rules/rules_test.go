package rules

import (
	"testing"

	"agent_arena/internal/config"
	"agent_arena/internal/domain"
)

var allMoves = []domain.Move{domain.MoveRock, domain.MovePaper, domain.MoveScissors}

func TestDecideRoundWinnerTable(t *testing.T) {
	cases := []struct {
		a, b domain.Move
		want domain.RoundOutcome
	}{
		{domain.MoveRock, domain.MoveScissors, domain.OutcomeWinA},
		{domain.MovePaper, domain.MoveRock, domain.OutcomeWinA},
		{domain.MoveScissors, domain.MovePaper, domain.OutcomeWinA},
		{domain.MoveScissors, domain.MoveRock, domain.OutcomeWinB},
		{domain.MoveRock, domain.MovePaper, domain.OutcomeWinB},
		{domain.MovePaper, domain.MoveScissors, domain.OutcomeWinB},
		{domain.MoveRock, domain.MoveRock, domain.OutcomeDraw},
		{domain.MovePaper, domain.MovePaper, domain.OutcomeDraw},
		{domain.MoveScissors, domain.MoveScissors, domain.OutcomeDraw},
	}

	for _, tc := range cases {
		if got := DecideRoundWinner(tc.a, tc.b); got != tc.want {
			t.Fatalf("DecideRoundWinner(%s,%s) = %s; want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

// Swapping the moves must swap WIN_A/WIN_B and preserve DRAW.
func TestDecideRoundWinnerAntisymmetric(t *testing.T) {
	for _, a := range allMoves {
		for _, b := range allMoves {
			got := DecideRoundWinner(a, b)
			swapped := DecideRoundWinner(b, a)

			switch got {
			case domain.OutcomeWinA:
				if swapped != domain.OutcomeWinB {
					t.Fatalf("(%s,%s)=WIN_A but (%s,%s)=%s", a, b, b, a, swapped)
				}
			case domain.OutcomeWinB:
				if swapped != domain.OutcomeWinA {
					t.Fatalf("(%s,%s)=WIN_B but (%s,%s)=%s", a, b, b, a, swapped)
				}
			case domain.OutcomeDraw:
				if swapped != domain.OutcomeDraw {
					t.Fatalf("(%s,%s)=DRAW but (%s,%s)=%s", a, b, b, a, swapped)
				}
			default:
				t.Fatalf("unexpected outcome %s", got)
			}
		}
	}
}

func TestIsReadBonus(t *testing.T) {
	rock := domain.MoveRock
	if !IsReadBonus(domain.MovePaper, &rock) {
		t.Fatal("PAPER should read-bonus against prior ROCK")
	}
	if IsReadBonus(domain.MoveScissors, &rock) {
		t.Fatal("SCISSORS should not read-bonus against prior ROCK")
	}
	if IsReadBonus(domain.MovePaper, nil) {
		t.Fatal("no prior move means no read bonus")
	}
}

func TestValidateMoveUseLimit(t *testing.T) {
	r := config.DefaultRules() // limit 4

	history := []domain.Move{
		domain.MoveRock, domain.MovePaper, domain.MoveRock,
		domain.MoveScissors, domain.MoveRock, domain.MovePaper, domain.MoveRock,
	}

	v := ValidateMove(domain.MoveRock, history, r)
	if v.Valid {
		t.Fatal("5th use of ROCK with limit 4 should be invalid")
	}
	if v.Violation == nil || *v.Violation != domain.ViolationMoveUseLimit {
		t.Fatalf("violation = %v; want MOVE_USE_LIMIT", v.Violation)
	}

	if got := ValidateMove(domain.MoveScissors, history, r); !got.Valid {
		t.Fatalf("SCISSORS used once should be valid, got violation %v", got.Violation)
	}
}

func TestValidateMoveConsecutiveLimit(t *testing.T) {
	r := config.DefaultRules() // consecutive limit 3

	history := []domain.Move{domain.MovePaper, domain.MoveRock, domain.MoveRock}

	v := ValidateMove(domain.MoveRock, history, r)
	if v.Valid {
		t.Fatal("third ROCK in a row should be invalid")
	}
	if v.Violation == nil || *v.Violation != domain.ViolationConsecutiveLimit {
		t.Fatalf("violation = %v; want CONSECUTIVE_LIMIT", v.Violation)
	}

	// A break in the run resets the count.
	history = []domain.Move{domain.MoveRock, domain.MovePaper, domain.MoveRock}
	if got := ValidateMove(domain.MoveRock, history, r); !got.Valid {
		t.Fatalf("non-consecutive ROCK should be valid, got %v", got.Violation)
	}
}

func matchWith(scoreA, scoreB, winsA, winsB, round, max int) *domain.Match {
	return &domain.Match{
		AgentA: "agent_a", AgentB: "agent_b",
		ScoreA: scoreA, ScoreB: scoreB,
		WinsA: winsA, WinsB: winsB,
		CurrentRound: round, MaxRounds: max,
	}
}

func TestCheckMatchWinner(t *testing.T) {
	r := config.DefaultRules() // threshold 4, max 12

	cases := []struct {
		name  string
		match *domain.Match
		want  string
	}{
		{"continue early", matchWith(2, 1, 2, 1, 3, 12), ""},
		{"threshold with lead", matchWith(4, 2, 3, 2, 5, 12), "agent_a"},
		{"threshold but tied continues", matchWith(4, 4, 3, 3, 5, 12), ""},
		{"both over threshold points decide", matchWith(5, 4, 3, 4, 6, 12), "agent_a"},
		{"both over threshold wins tiebreak", matchWith(5, 5, 4, 3, 7, 12), "agent_a"},
		{"both over threshold full tie draws", matchWith(5, 5, 4, 4, 7, 12), MatchDraw},
		{"max rounds points decide", matchWith(3, 2, 2, 2, 12, 12), "agent_a"},
		{"max rounds wins decide", matchWith(3, 3, 1, 4, 12, 12), "agent_b"},
		{"max rounds full tie draws", matchWith(3, 3, 3, 3, 12, 12), MatchDraw},
	}

	for _, tc := range cases {
		if got := CheckMatchWinner(tc.match, r); got != tc.want {
			t.Fatalf("%s: CheckMatchWinner = %q; want %q", tc.name, got, tc.want)
		}
	}
}

func TestMoveHistorySkipsForfeits(t *testing.T) {
	rock := domain.MoveRock
	paper := domain.MovePaper

	rounds := []*domain.Round{
		{RoundNo: 1, MoveA: &rock, MoveB: &paper},
		{RoundNo: 2, MoveA: nil, MoveB: nil}, // forfeit round, no reveals
		{RoundNo: 3, MoveA: &paper, MoveB: &rock},
	}

	got := MoveHistory(rounds, "A")
	if len(got) != 2 || got[0] != domain.MoveRock || got[1] != domain.MovePaper {
		t.Fatalf("MoveHistory A = %v", got)
	}

	got = MoveHistory(rounds, "B")
	if len(got) != 2 || got[0] != domain.MovePaper || got[1] != domain.MoveRock {
		t.Fatalf("MoveHistory B = %v", got)
	}
}
