package engine

import (
	"time"

	"agent_arena/internal/domain"
)

// TimeoutCheck reports who, if anyone, must forfeit a round for missing a
// deadline. ForfeitAgentID is empty when no single side is at fault.
type TimeoutCheck struct {
	TimedOut       bool
	ForfeitAgentID string
	Violation      string
}

// CheckRoundTimeouts inspects the stored commit/reveal records for one
// round against their deadlines. Pure decision: nothing is mutated, the
// caller still has to progress the match.
//
// One-sided commit past the commit deadline forfeits the non-committer.
// With both commits in, a single verified reveal past
// max(commit times) + revealWindow forfeits the non-revealer.
func CheckRoundTimeouts(
	m *domain.Match,
	commitA, commitB *domain.CommitRecord,
	revealA, revealB *domain.RevealRecord,
	revealWindow time.Duration,
	now time.Time,
) TimeoutCheck {
	if commitA != nil && commitB == nil && now.After(commitA.ExpiresAt) {
		return TimeoutCheck{TimedOut: true, ForfeitAgentID: m.AgentB, Violation: domain.ViolationCommitTimeout}
	}
	if commitB != nil && commitA == nil && now.After(commitB.ExpiresAt) {
		return TimeoutCheck{TimedOut: true, ForfeitAgentID: m.AgentA, Violation: domain.ViolationCommitTimeout}
	}

	if commitA != nil && commitB != nil {
		revealDeadline := commitA.CommittedAt
		if commitB.CommittedAt.After(revealDeadline) {
			revealDeadline = commitB.CommittedAt
		}
		revealDeadline = revealDeadline.Add(revealWindow)

		verifiedA := revealA != nil && revealA.Verified
		verifiedB := revealB != nil && revealB.Verified

		if verifiedA && !verifiedB && now.After(revealDeadline) {
			return TimeoutCheck{TimedOut: true, ForfeitAgentID: m.AgentB, Violation: domain.ViolationRevealTimeout}
		}
		if verifiedB && !verifiedA && now.After(revealDeadline) {
			return TimeoutCheck{TimedOut: true, ForfeitAgentID: m.AgentA, Violation: domain.ViolationRevealTimeout}
		}
	}

	return TimeoutCheck{}
}
