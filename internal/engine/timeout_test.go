package engine

import (
	"testing"
	"time"

	"agent_arena/internal/domain"
)

const revealWindow = 15 * time.Second

func timeoutMatch() *domain.Match {
	return &domain.Match{ID: "m1", AgentA: "agent_a", AgentB: "agent_b"}
}

func commitAt(agentID string, committed time.Time, window time.Duration) *domain.CommitRecord {
	return &domain.CommitRecord{
		MatchID:     "m1",
		RoundNo:     1,
		AgentID:     agentID,
		CommitHash:  "deadbeef",
		CommittedAt: committed,
		ExpiresAt:   committed.Add(window),
	}
}

func TestCommitTimeoutForfeitsNonCommitter(t *testing.T) {
	m := timeoutMatch()
	base := time.Now()
	commitA := commitAt("agent_a", base, 30*time.Second)

	check := CheckRoundTimeouts(m, commitA, nil, nil, nil, revealWindow, base.Add(31*time.Second))
	if !check.TimedOut {
		t.Fatal("expected timeout")
	}
	if check.ForfeitAgentID != "agent_b" {
		t.Fatalf("forfeit = %s; want agent_b", check.ForfeitAgentID)
	}
	if check.Violation != domain.ViolationCommitTimeout {
		t.Fatalf("violation = %s; want COMMIT_TIMEOUT", check.Violation)
	}
}

func TestCommitNotYetExpired(t *testing.T) {
	m := timeoutMatch()
	base := time.Now()
	commitA := commitAt("agent_a", base, 30*time.Second)

	check := CheckRoundTimeouts(m, commitA, nil, nil, nil, revealWindow, base.Add(10*time.Second))
	if check.TimedOut {
		t.Fatal("deadline not reached, no timeout expected")
	}
}

func TestRevealTimeoutUsesLatestCommit(t *testing.T) {
	m := timeoutMatch()
	base := time.Now()
	commitA := commitAt("agent_a", base, 30*time.Second)
	commitB := commitAt("agent_b", base.Add(5*time.Second), 30*time.Second)

	revealA := &domain.RevealRecord{MatchID: "m1", RoundNo: 1, AgentID: "agent_a", Move: domain.MoveRock, Verified: true}

	// Deadline runs from B's later commit. Just before it, no timeout.
	almost := base.Add(5 * time.Second).Add(revealWindow - time.Second)
	if check := CheckRoundTimeouts(m, commitA, commitB, revealA, nil, revealWindow, almost); check.TimedOut {
		t.Fatal("reveal deadline not passed yet")
	}

	after := base.Add(5 * time.Second).Add(revealWindow + time.Second)
	check := CheckRoundTimeouts(m, commitA, commitB, revealA, nil, revealWindow, after)
	if !check.TimedOut {
		t.Fatal("expected reveal timeout")
	}
	if check.ForfeitAgentID != "agent_b" {
		t.Fatalf("forfeit = %s; want agent_b", check.ForfeitAgentID)
	}
	if check.Violation != domain.ViolationRevealTimeout {
		t.Fatalf("violation = %s; want REVEAL_TIMEOUT", check.Violation)
	}
}

func TestUnverifiedRevealDoesNotCount(t *testing.T) {
	m := timeoutMatch()
	base := time.Now()
	commitA := commitAt("agent_a", base, 30*time.Second)
	commitB := commitAt("agent_b", base, 30*time.Second)

	// B submitted a reveal but it never verified; neither side counts,
	// so nobody is singled out.
	revealB := &domain.RevealRecord{MatchID: "m1", RoundNo: 1, AgentID: "agent_b", Move: domain.MoveRock, Verified: false}

	check := CheckRoundTimeouts(m, commitA, commitB, nil, revealB, revealWindow, base.Add(time.Minute))
	if check.TimedOut {
		t.Fatal("no verified reveal on either side: caller decides, not the enforcer")
	}
}

func TestNeitherActedNoPenalty(t *testing.T) {
	m := timeoutMatch()
	check := CheckRoundTimeouts(m, nil, nil, nil, nil, revealWindow, time.Now())
	if check.TimedOut || check.ForfeitAgentID != "" {
		t.Fatalf("expected no-fault result, got %+v", check)
	}
}
