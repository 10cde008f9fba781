package arena

import (
	"testing"
	"time"

	"agent_arena/internal/config"
	"agent_arena/internal/domain"
)

func newTestMatchmaker(t *testing.T) (*MemoryStore, *Matchmaker) {
	t.Helper()
	store := NewMemoryStore()
	s := NewScheduler(store, testTiming(), config.DefaultRules(), nil, newRatingRecorder())
	t.Cleanup(s.Close)
	return store, NewMatchmaker(store, s, config.DefaultRules())
}

func seedQualified(store *MemoryStore, ids ...string) {
	now := time.Now()
	for _, id := range ids {
		store.PutAgent(&domain.Agent{ID: id, Name: id, Status: domain.AgentQualified, Elo: 1200, CreatedAt: now, UpdatedAt: now})
	}
}

func TestEnqueueSingleAgentWaits(t *testing.T) {
	store, mm := newTestMatchmaker(t)
	seedQualified(store, "a1")

	entry, err := mm.Enqueue("a1")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Status != domain.QueueWaiting {
		t.Fatalf("status = %s; want WAITING", entry.Status)
	}

	agent, _ := store.GetAgent("a1")
	if agent.Status != domain.AgentWaiting {
		t.Fatalf("agent status = %s; want WAITING", agent.Status)
	}
}

func TestEnqueueSecondAgentPairsFIFO(t *testing.T) {
	store, mm := newTestMatchmaker(t)
	seedQualified(store, "a1", "a2", "a3")

	if _, err := mm.Enqueue("a1"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := mm.Enqueue("a2"); err != nil {
		t.Fatal(err)
	}

	e1, _ := store.GetQueueEntry("a1")
	e2, _ := store.GetQueueEntry("a2")
	if e1.Status != domain.QueueMatched || e2.Status != domain.QueueMatched {
		t.Fatalf("queue statuses %s/%s; want MATCHED/MATCHED", e1.Status, e2.Status)
	}

	// StartReadyCheck moves both straight to IN_MATCH.
	a1, _ := store.GetAgent("a1")
	a2, _ := store.GetAgent("a2")
	if a1.Status != domain.AgentInMatch || a2.Status != domain.AgentInMatch {
		t.Fatalf("agent statuses %s/%s; want IN_MATCH", a1.Status, a2.Status)
	}
}

func TestTryMatchPairsEarliestTwo(t *testing.T) {
	store, mm := newTestMatchmaker(t)
	seedQualified(store, "a1", "a2", "a3")

	base := time.Now()
	for i, id := range []string{"a3", "a1", "a2"} {
		store.PutQueueEntry(&domain.QueueEntry{
			AgentID:  id,
			Status:   domain.QueueWaiting,
			JoinedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
	}

	pairing, err := mm.TryMatch()
	if err != nil {
		t.Fatal(err)
	}
	if pairing == nil {
		t.Fatal("expected a pairing")
	}
	if pairing.AgentA != "a3" || pairing.AgentB != "a1" {
		t.Fatalf("paired %s vs %s; strict join order wants a3 vs a1", pairing.AgentA, pairing.AgentB)
	}

	m, ok := store.GetMatch(pairing.MatchID)
	if !ok {
		t.Fatal("match not stored")
	}
	if m.Status != domain.MatchCreated && m.CurrentPhase != domain.PhaseReadyCheck {
		t.Fatalf("match status=%s phase=%s", m.Status, m.CurrentPhase)
	}
	if m.MaxRounds != config.DefaultRules().MaxRounds {
		t.Fatalf("maxRounds = %d", m.MaxRounds)
	}

	// The third agent keeps waiting.
	e3, _ := store.GetQueueEntry("a2")
	if e3.Status != domain.QueueWaiting {
		t.Fatalf("a2 status = %s; want WAITING", e3.Status)
	}
}

func TestTryMatchNeedsTwoWaiting(t *testing.T) {
	store, mm := newTestMatchmaker(t)
	seedQualified(store, "a1")
	if _, err := mm.Enqueue("a1"); err != nil {
		t.Fatal(err)
	}

	pairing, err := mm.TryMatch()
	if err != nil {
		t.Fatal(err)
	}
	if pairing != nil {
		t.Fatal("one waiting agent must not pair")
	}
}

func TestEnqueueRefusesDoubleJoin(t *testing.T) {
	store, mm := newTestMatchmaker(t)
	seedQualified(store, "a1")

	if _, err := mm.Enqueue("a1"); err != nil {
		t.Fatal(err)
	}
	if _, err := mm.Enqueue("a1"); err != ErrAlreadyQueued {
		t.Fatalf("err = %v; want ErrAlreadyQueued", err)
	}
}

func TestEnqueueRefusesBusyAgent(t *testing.T) {
	store, mm := newTestMatchmaker(t)
	seedQualified(store, "a1")
	agent, _ := store.GetAgent("a1")
	agent.Status = domain.AgentInMatch
	store.PutAgent(agent)

	if _, err := mm.Enqueue("a1"); err != ErrAgentBusy {
		t.Fatalf("err = %v; want ErrAgentBusy", err)
	}
}

func TestEnqueueUnknownAgent(t *testing.T) {
	_, mm := newTestMatchmaker(t)
	if _, err := mm.Enqueue("ghost"); err != ErrAgentNotFound {
		t.Fatalf("err = %v; want ErrAgentNotFound", err)
	}
}

func TestLeaveReleasesWaitingAgent(t *testing.T) {
	store, mm := newTestMatchmaker(t)
	seedQualified(store, "a1")
	if _, err := mm.Enqueue("a1"); err != nil {
		t.Fatal(err)
	}

	if err := mm.Leave("a1"); err != nil {
		t.Fatal(err)
	}

	entry, _ := store.GetQueueEntry("a1")
	if entry.Status != domain.QueueExpired {
		t.Fatalf("entry status = %s; want EXPIRED", entry.Status)
	}
	agent, _ := store.GetAgent("a1")
	if agent.Status != domain.AgentQualified {
		t.Fatalf("agent status = %s; want QUALIFIED", agent.Status)
	}

	// Withdrawn agents can join again.
	if _, err := mm.Enqueue("a1"); err != nil {
		t.Fatalf("re-enqueue after leave: %v", err)
	}
}
