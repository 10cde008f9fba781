package engine

import (
	"testing"
	"time"

	"agent_arena/internal/config"
	"agent_arena/internal/domain"
)

func newTestMatch() *domain.Match {
	now := time.Now()
	return &domain.Match{
		ID:           "match_test",
		AgentA:       "agent_a",
		AgentB:       "agent_b",
		Status:       domain.MatchCreated,
		CurrentPhase: domain.PhaseCommit,
		MaxRounds:    12,
		CreatedAt:    now,
		StartedAt:    now,
	}
}

func mv(m domain.Move) *domain.Move { return &m }

func TestProcessRoundFirstRoundStartsMatch(t *testing.T) {
	m := newTestMatch()
	r := config.DefaultRules()

	res, err := ProcessRound(m, nil, RoundInput{MoveA: domain.MoveRock, MoveB: domain.MoveScissors}, r, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if res.Match.Status != domain.MatchRunning {
		t.Fatalf("status = %s; want RUNNING", res.Match.Status)
	}
	if res.Events[0].EventType() != "MATCH_STARTED" {
		t.Fatalf("first event = %s; want MATCH_STARTED", res.Events[0].EventType())
	}
	if res.Round.Outcome != domain.OutcomeWinA {
		t.Fatalf("outcome = %s; want WIN_A", res.Round.Outcome)
	}
	if res.Match.ScoreA != r.NormalWinPoints || res.Match.WinsA != 1 {
		t.Fatalf("scoreA=%d winsA=%d", res.Match.ScoreA, res.Match.WinsA)
	}
}

func TestProcessRoundReadBonusReplacesNormalPoints(t *testing.T) {
	m := newTestMatch()
	m.Status = domain.MatchRunning
	r := config.DefaultRules()
	now := time.Now()

	prior := []*domain.Round{{
		RoundNo: 1,
		MoveA:   mv(domain.MoveRock),
		MoveB:   mv(domain.MoveRock),
		Outcome: domain.OutcomeDraw,
	}}

	// A plays PAPER, which beats B's previous ROCK: read bonus.
	res, err := ProcessRound(m, prior, RoundInput{MoveA: domain.MovePaper, MoveB: domain.MoveRock}, r, now)
	if err != nil {
		t.Fatal(err)
	}

	if !res.Round.ReadBonusA {
		t.Fatal("expected read bonus for A")
	}
	if res.Round.PointsA != r.ReadBonusPoints {
		t.Fatalf("pointsA = %d; want %d", res.Round.PointsA, r.ReadBonusPoints)
	}
}

func TestProcessRoundPredictionBonusStacks(t *testing.T) {
	m := newTestMatch()
	m.Status = domain.MatchRunning
	r := config.DefaultRules()

	in := RoundInput{
		MoveA:       domain.MoveRock,
		MoveB:       domain.MoveScissors,
		PredictionA: mv(domain.MoveScissors), // correct call of B's move
	}
	res, err := ProcessRound(m, nil, in, r, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if res.Round.PointsA != r.NormalWinPoints+1 {
		t.Fatalf("pointsA = %d; want %d", res.Round.PointsA, r.NormalWinPoints+1)
	}
	if !res.Round.ReadBonusA {
		t.Fatal("prediction hit should set the read bonus flag")
	}
}

func TestProcessRoundPredictionIgnoredOnDraw(t *testing.T) {
	m := newTestMatch()
	m.Status = domain.MatchRunning
	r := config.DefaultRules()

	in := RoundInput{
		MoveA:       domain.MoveRock,
		MoveB:       domain.MoveRock,
		PredictionA: mv(domain.MoveRock),
	}
	res, err := ProcessRound(m, nil, in, r, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if res.Round.PointsA != 0 || res.Round.ReadBonusA {
		t.Fatalf("draw must not pay prediction bonus: pointsA=%d bonus=%v", res.Round.PointsA, res.Round.ReadBonusA)
	}
}

func TestProcessRoundValidationForfeit(t *testing.T) {
	m := newTestMatch()
	m.Status = domain.MatchRunning
	r := config.DefaultRules() // consecutive limit 3

	prior := []*domain.Round{
		{RoundNo: 1, MoveA: mv(domain.MoveRock), MoveB: mv(domain.MovePaper), Outcome: domain.OutcomeWinB},
		{RoundNo: 2, MoveA: mv(domain.MoveRock), MoveB: mv(domain.MoveScissors), Outcome: domain.OutcomeWinA},
	}
	m.CurrentRound = 2

	// Third ROCK in a row for A: forfeit, B wins at normal points.
	res, err := ProcessRound(m, prior, RoundInput{MoveA: domain.MoveRock, MoveB: domain.MoveScissors}, r, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if res.Round.Outcome != domain.OutcomeForfeitA {
		t.Fatalf("outcome = %s; want FORFEIT_A", res.Round.Outcome)
	}
	if res.Round.ViolationA == nil || *res.Round.ViolationA != domain.ViolationConsecutiveLimit {
		t.Fatalf("violationA = %v", res.Round.ViolationA)
	}
	if res.Round.PointsB != r.NormalWinPoints {
		t.Fatalf("pointsB = %d; want %d", res.Round.PointsB, r.NormalWinPoints)
	}
	if res.Match.WinsB != 1 {
		t.Fatalf("winsB = %d; want 1", res.Match.WinsB)
	}
}

func TestProcessRoundBothInvalidDraws(t *testing.T) {
	m := newTestMatch()
	m.Status = domain.MatchRunning
	r := config.DefaultRules()

	prior := []*domain.Round{
		{RoundNo: 1, MoveA: mv(domain.MoveRock), MoveB: mv(domain.MovePaper)},
		{RoundNo: 2, MoveA: mv(domain.MoveRock), MoveB: mv(domain.MovePaper)},
	}
	m.CurrentRound = 2

	res, err := ProcessRound(m, prior, RoundInput{MoveA: domain.MoveRock, MoveB: domain.MovePaper}, r, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if res.Round.Outcome != domain.OutcomeDraw {
		t.Fatalf("outcome = %s; want DRAW", res.Round.Outcome)
	}
	if res.Round.ViolationA == nil || res.Round.ViolationB == nil {
		t.Fatal("both sides should carry a violation tag")
	}
	if res.Round.PointsA != 0 || res.Round.PointsB != 0 {
		t.Fatal("no points on a double forfeit")
	}
}

func TestProcessRoundFinishesAtThreshold(t *testing.T) {
	m := newTestMatch()
	m.Status = domain.MatchRunning
	m.ScoreA = 3
	m.WinsA = 3
	m.CurrentRound = 3
	r := config.DefaultRules() // threshold 4

	prior := make([]*domain.Round, 3)
	for i := range prior {
		prior[i] = &domain.Round{RoundNo: i + 1, MoveA: mv(domain.MovePaper), MoveB: mv(domain.MoveRock)}
	}

	res, err := ProcessRound(m, prior, RoundInput{MoveA: domain.MoveScissors, MoveB: domain.MovePaper}, r, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if res.Match.Status != domain.MatchFinished {
		t.Fatalf("status = %s; want FINISHED", res.Match.Status)
	}
	if res.Match.WinnerID == nil || *res.Match.WinnerID != "agent_a" {
		t.Fatalf("winner = %v; want agent_a", res.Match.WinnerID)
	}

	last := res.Events[len(res.Events)-1]
	if last.EventType() != "MATCH_FINISHED" {
		t.Fatalf("last event = %s; want MATCH_FINISHED", last.EventType())
	}
}

func TestProcessRoundRejectsFinishedMatch(t *testing.T) {
	m := newTestMatch()
	m.Status = domain.MatchFinished

	_, err := ProcessRound(m, nil, RoundInput{MoveA: domain.MoveRock, MoveB: domain.MoveRock}, config.DefaultRules(), time.Now())
	if err != ErrMatchOver {
		t.Fatalf("err = %v; want ErrMatchOver", err)
	}
}
