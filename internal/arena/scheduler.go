package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"agent_arena/internal/config"
	"agent_arena/internal/domain"
	"agent_arena/internal/engine"
	"agent_arena/internal/fairness"
	"agent_arena/internal/logger"
	"agent_arena/internal/rules"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrNotParticipant  = errors.New("agent is not a participant of this match")
	ErrWrongPhase      = errors.New("action not valid in current phase")
	ErrWrongRound      = errors.New("round number does not match current round")
	ErrNoCommit        = errors.New("no commit on record for this round")
	ErrDuplicateCommit = errors.New("commit already submitted with a different hash")
	ErrDuplicateReveal = errors.New("reveal already submitted with a different payload")
	ErrReplayedReveal  = errors.New("reveal nonce already used")
)

// RatingUpdater is the post-match rating callback. Finalization never
// waits on it.
type RatingUpdater interface {
	ApplyMatchRatings(ctx context.Context, m *domain.Match) (deltaA, deltaB int, err error)
	ApplyReadyForfeit(agentID string, delta int)
}

// Scheduler drives every match through its phases. One instance owns its
// own timers and resolution locks, so several can coexist in tests.
//
// Every transition that both an agent action and a timer can trigger goes
// through a resolution lock: a check-and-set marker that is set exactly
// once and never cleared. Whichever trigger wins performs the transition
// and cancels the loser's timer; a late timer firing is a no-op.
type Scheduler struct {
	store   *MemoryStore
	timing  config.Timing
	ruleset config.Rules
	sink    engine.Sink
	rating  RatingUpdater
	log     *slog.Logger

	mu            sync.Mutex
	timers        map[string]*time.Timer
	resolvedReady map[string]struct{}
	resolvedRound map[string]struct{}
	closed        bool
}

func NewScheduler(store *MemoryStore, timing config.Timing, ruleset config.Rules, sink engine.Sink, rating RatingUpdater) *Scheduler {
	if sink == nil {
		sink = engine.NopSink{}
	}
	return &Scheduler{
		store:         store,
		timing:        timing,
		ruleset:       ruleset,
		sink:          sink,
		rating:        rating,
		log:           logger.With("component", "scheduler"),
		timers:        make(map[string]*time.Timer),
		resolvedReady: make(map[string]struct{}),
		resolvedRound: make(map[string]struct{}),
	}
}

// Close stops every pending timer. In-flight callbacks become no-ops
// through the resolution locks.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}

// ============ RESOLUTION LOCKS ============

// resolveReady claims the ready-check resolution for a match. True means
// the caller owns the transition.
func (s *Scheduler) resolveReady(matchID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, done := s.resolvedReady[matchID]; done {
		return false
	}
	s.resolvedReady[matchID] = struct{}{}
	return true
}

// resolveRound claims the resolution of one round.
func (s *Scheduler) resolveRound(matchID string, roundNo int) bool {
	key := fmt.Sprintf("%s:%d", matchID, roundNo)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, done := s.resolvedRound[key]; done {
		return false
	}
	s.resolvedRound[key] = struct{}{}
	return true
}

// ============ TIMERS ============

func timerKey(matchID string, phase domain.MatchPhase, round int) string {
	return fmt.Sprintf("%s:%s:%d", matchID, phase, round)
}

func (s *Scheduler) setTimer(matchID string, phase domain.MatchPhase, round int, d time.Duration, fn func()) {
	key := timerKey(matchID, phase, round)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if old, ok := s.timers[key]; ok {
		old.Stop()
	}
	s.timers[key] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
}

func (s *Scheduler) clearTimer(matchID string, phase domain.MatchPhase, round int) {
	key := timerKey(matchID, phase, round)
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// ============ READY CHECK ============

// StartReadyCheck opens the ready window for a freshly created match.
// Called by the matchmaker right after pairing.
func (s *Scheduler) StartReadyCheck(matchID string) error {
	m, ok := s.store.GetMatch(matchID)
	if !ok {
		return ErrMatchNotFound
	}
	if m.Status != domain.MatchCreated {
		return ErrWrongPhase
	}

	deadline := time.Now().Add(s.timing.ReadyCheckWindow)
	m.CurrentPhase = domain.PhaseReadyCheck
	m.PhaseDeadline = &deadline
	s.store.PutMatch(m)

	s.setAgentStatus(m.AgentA, domain.AgentInMatch)
	s.setAgentStatus(m.AgentB, domain.AgentInMatch)

	ActiveMatches.Inc()

	s.setTimer(matchID, domain.PhaseReadyCheck, 0, s.timing.ReadyCheckWindow, func() {
		s.handleReadyTimeout(matchID)
	})

	s.log.Info("ready check started", "match_id", matchID, "deadline", deadline)
	return nil
}

// MarkReady records an agent's ready signal. Idempotent: repeating it is a
// no-op. Both sides ready advances the match into the first commit phase.
func (s *Scheduler) MarkReady(matchID, agentID string) (*domain.Match, error) {
	// Flag update and validation run inside the store's write lock so two
	// concurrent ready signals cannot overwrite each other, and the
	// both-ready decision below reads the post-update state.
	var vErr error
	m, ok := s.store.UpdateMatch(matchID, func(m *domain.Match) {
		if !m.Participant(agentID) {
			vErr = ErrNotParticipant
			return
		}
		if m.CurrentPhase != domain.PhaseReadyCheck {
			// Duplicate ready after the phase already advanced stays a no-op.
			if (agentID == m.AgentA && m.ReadyA) || (agentID == m.AgentB && m.ReadyB) {
				return
			}
			vErr = ErrWrongPhase
			return
		}
		if agentID == m.AgentA {
			m.ReadyA = true
		} else {
			m.ReadyB = true
		}
	})
	if !ok {
		return nil, ErrMatchNotFound
	}
	if vErr != nil {
		return nil, vErr
	}

	if m.ReadyA && m.ReadyB && m.CurrentPhase == domain.PhaseReadyCheck {
		if !s.resolveReady(matchID) {
			current, _ := s.store.GetMatch(matchID)
			return current, nil
		}
		s.clearTimer(matchID, domain.PhaseReadyCheck, 0)
		return s.transitionToCommit(matchID, 1)
	}

	return m, nil
}

func (s *Scheduler) handleReadyTimeout(matchID string) {
	if !s.resolveReady(matchID) {
		return
	}

	m, ok := s.store.GetMatch(matchID)
	if !ok || m.CurrentPhase != domain.PhaseReadyCheck {
		return
	}

	// One absent side pays the fixed penalty; both absent costs nobody.
	if m.ReadyA && !m.ReadyB {
		s.rating.ApplyReadyForfeit(m.AgentB, s.timing.ReadyForfeitElo)
	} else if !m.ReadyA && m.ReadyB {
		s.rating.ApplyReadyForfeit(m.AgentA, s.timing.ReadyForfeitElo)
	}

	s.setAgentStatus(m.AgentA, domain.AgentQualified)
	s.setAgentStatus(m.AgentB, domain.AgentQualified)

	now := time.Now()
	m.Status = domain.MatchFinished
	m.CurrentPhase = domain.PhaseFinished
	m.WinnerID = nil
	m.FinishedAt = &now
	s.store.PutMatch(m)

	ActiveMatches.Dec()
	MatchesFinished.WithLabelValues("ready_timeout").Inc()

	s.sink.Publish(matchID, engine.ReadyTimeout{MatchID: matchID, ReadyA: m.ReadyA, ReadyB: m.ReadyB})
	s.log.Info("ready check timed out", "match_id", matchID, "ready_a", m.ReadyA, "ready_b", m.ReadyB)
}

// ============ COMMIT PHASE ============

func (s *Scheduler) transitionToCommit(matchID string, roundNo int) (*domain.Match, error) {
	m, ok := s.store.GetMatch(matchID)
	if !ok {
		return nil, ErrMatchNotFound
	}

	deadline := time.Now().Add(s.timing.CommitWindow)
	started := m.Status == domain.MatchCreated
	m.Status = domain.MatchRunning
	m.CurrentPhase = domain.PhaseCommit
	m.CurrentRound = roundNo
	m.PhaseDeadline = &deadline
	s.store.PutMatch(m)

	var events []engine.Event
	if started {
		MatchesStarted.Inc()
		events = append(events, engine.MatchStarted{MatchID: matchID, AgentA: m.AgentA, AgentB: m.AgentB})
	}
	events = append(events, engine.RoundStart{MatchID: matchID, RoundNo: roundNo, CommitDeadline: deadline})
	s.sink.Publish(matchID, events...)

	s.setTimer(matchID, domain.PhaseCommit, roundNo, s.timing.CommitWindow, func() {
		s.handleCommitTimeout(matchID, roundNo)
	})

	return m, nil
}

// SubmitCommit stores one agent's sealed move for the current round.
// Resubmitting the identical hash is a no-op; a different hash is refused.
func (s *Scheduler) SubmitCommit(matchID string, roundNo int, agentID, commitHash string, prediction *domain.Move) (*domain.CommitRecord, error) {
	if commitHash == "" {
		return nil, errors.New("commit hash is required")
	}

	m, ok := s.store.GetMatch(matchID)
	if !ok {
		return nil, ErrMatchNotFound
	}
	if !m.Participant(agentID) {
		return nil, ErrNotParticipant
	}
	if m.CurrentPhase != domain.PhaseCommit {
		return nil, ErrWrongPhase
	}
	if roundNo != m.CurrentRound {
		return nil, ErrWrongRound
	}

	if existing, ok := s.store.GetCommit(matchID, roundNo, agentID); ok {
		if existing.CommitHash == commitHash {
			// Late-bound prediction may land on the retry.
			if existing.Prediction == nil && prediction != nil {
				existing.Prediction = prediction
				s.store.PutCommit(existing)
			}
			return existing, nil
		}
		return nil, ErrDuplicateCommit
	}

	now := time.Now()
	expiry := now.Add(s.timing.CommitWindow)
	if m.PhaseDeadline != nil {
		expiry = *m.PhaseDeadline
	}
	record := &domain.CommitRecord{
		MatchID:     matchID,
		RoundNo:     roundNo,
		AgentID:     agentID,
		CommitHash:  commitHash,
		Prediction:  prediction,
		CommittedAt: now,
		ExpiresAt:   expiry,
	}
	s.store.PutCommit(record)

	s.sink.Publish(matchID, engine.RoundCommit{MatchID: matchID, RoundNo: roundNo, AgentID: agentID})

	_, otherOK := s.store.GetCommit(matchID, roundNo, m.Opponent(agentID))
	if otherOK {
		s.transitionToReveal(matchID, roundNo)
	}

	return record, nil
}

func (s *Scheduler) transitionToReveal(matchID string, roundNo int) {
	// Both committers can race here; the phase flip decides a single
	// winner, so the event publishes once and the timer arms once.
	deadline := time.Now().Add(s.timing.RevealWindow)
	var won bool
	_, ok := s.store.UpdateMatch(matchID, func(m *domain.Match) {
		if m.CurrentPhase != domain.PhaseCommit || m.CurrentRound != roundNo {
			return
		}
		m.CurrentPhase = domain.PhaseReveal
		m.PhaseDeadline = &deadline
		won = true
	})
	if !ok || !won {
		return
	}
	s.clearTimer(matchID, domain.PhaseCommit, roundNo)

	s.sink.Publish(matchID, engine.BothCommitted{MatchID: matchID, RoundNo: roundNo, RevealDeadline: deadline})

	s.setTimer(matchID, domain.PhaseReveal, roundNo, s.timing.RevealWindow, func() {
		s.handleRevealTimeout(matchID, roundNo)
	})
}

func (s *Scheduler) handleCommitTimeout(matchID string, roundNo int) {
	if !s.resolveRound(matchID, roundNo) {
		return
	}

	m, ok := s.store.GetMatch(matchID)
	if !ok {
		return
	}

	commitA, _ := s.store.GetCommit(matchID, roundNo, m.AgentA)
	commitB, _ := s.store.GetCommit(matchID, roundNo, m.AgentB)
	check := engine.CheckRoundTimeouts(m, commitA, commitB, nil, nil, s.timing.RevealWindow, time.Now())

	tag := domain.ViolationCommitTimeout
	outcome := domain.OutcomeDraw
	violationA, violationB := &tag, &tag
	switch {
	case check.TimedOut && check.ForfeitAgentID == m.AgentB:
		outcome = domain.OutcomeForfeitB
		violationA = nil
	case check.TimedOut && check.ForfeitAgentID == m.AgentA:
		outcome = domain.OutcomeForfeitA
		violationB = nil
	}

	s.log.Info("commit window expired", "match_id", matchID, "round", roundNo, "outcome", outcome)
	s.finalizeForfeitRound(m, roundNo, outcome, nil, nil, violationA, violationB)
}

// ============ REVEAL PHASE ============

// SubmitReveal discloses an agent's move and salt. The payload is hash
// verified and replay checked before it counts. A hash mismatch is not an
// error: the round immediately resolves against the mismatching agent.
func (s *Scheduler) SubmitReveal(matchID string, roundNo int, agentID string, move domain.Move, salt string) (*domain.RevealRecord, error) {
	m, ok := s.store.GetMatch(matchID)
	if !ok {
		return nil, ErrMatchNotFound
	}
	if !m.Participant(agentID) {
		return nil, ErrNotParticipant
	}
	if m.CurrentPhase != domain.PhaseReveal {
		return nil, ErrWrongPhase
	}
	if roundNo != m.CurrentRound {
		return nil, ErrWrongRound
	}

	commit, ok := s.store.GetCommit(matchID, roundNo, agentID)
	if !ok {
		return nil, ErrNoCommit
	}

	if existing, ok := s.store.GetReveal(matchID, roundNo, agentID); ok {
		if existing.Move == move && existing.Salt == salt {
			return existing, nil
		}
		return nil, ErrDuplicateReveal
	}

	roundID := fairness.RoundID(matchID, roundNo)

	verified, err := fairness.VerifyCommit(commit.CommitHash, move, salt, roundID, agentID)
	if err != nil {
		return nil, err
	}

	fresh, err := s.store.Nonces(matchID).VerifyAndRegister(fairness.BuildRevealNonce(roundID, agentID, salt))
	if err != nil {
		return nil, err
	}
	if !fresh {
		return nil, ErrReplayedReveal
	}

	record := &domain.RevealRecord{
		MatchID:    matchID,
		RoundNo:    roundNo,
		AgentID:    agentID,
		Move:       move,
		Salt:       salt,
		Verified:   verified,
		RevealedAt: time.Now(),
	}
	s.store.PutReveal(record)

	if !verified {
		s.handleHashMismatch(m, roundNo, agentID)
		return record, nil
	}

	other, ok := s.store.GetReveal(matchID, roundNo, m.Opponent(agentID))
	if ok && other.Verified {
		s.resolveBothRevealed(matchID, roundNo)
	}

	return record, nil
}

func (s *Scheduler) handleHashMismatch(m *domain.Match, roundNo int, cheaterID string) {
	if !s.resolveRound(m.ID, roundNo) {
		return
	}

	tag := domain.ViolationHashMismatch
	var outcome domain.RoundOutcome
	var violationA, violationB *string
	if cheaterID == m.AgentA {
		outcome = domain.OutcomeForfeitA
		violationA = &tag
	} else {
		outcome = domain.OutcomeForfeitB
		violationB = &tag
	}

	s.log.Warn("reveal hash mismatch", "match_id", m.ID, "round", roundNo, "agent_id", cheaterID)
	s.finalizeForfeitRound(m, roundNo, outcome, nil, nil, violationA, violationB)
}

func (s *Scheduler) handleRevealTimeout(matchID string, roundNo int) {
	if !s.resolveRound(matchID, roundNo) {
		return
	}

	m, ok := s.store.GetMatch(matchID)
	if !ok {
		return
	}

	commitA, _ := s.store.GetCommit(matchID, roundNo, m.AgentA)
	commitB, _ := s.store.GetCommit(matchID, roundNo, m.AgentB)
	revealA, _ := s.store.GetReveal(matchID, roundNo, m.AgentA)
	revealB, _ := s.store.GetReveal(matchID, roundNo, m.AgentB)
	check := engine.CheckRoundTimeouts(m, commitA, commitB, revealA, revealB, s.timing.RevealWindow, time.Now())

	tag := domain.ViolationRevealTimeout
	outcome := domain.OutcomeDraw
	var moveA, moveB *domain.Move
	violationA, violationB := &tag, &tag
	switch {
	case check.TimedOut && check.ForfeitAgentID == m.AgentB:
		outcome = domain.OutcomeForfeitB
		moveA = &revealA.Move
		violationA = nil
	case check.TimedOut && check.ForfeitAgentID == m.AgentA:
		outcome = domain.OutcomeForfeitA
		moveB = &revealB.Move
		violationB = nil
	}

	s.log.Info("reveal window expired", "match_id", matchID, "round", roundNo, "outcome", outcome)
	s.finalizeForfeitRound(m, roundNo, outcome, moveA, moveB, violationA, violationB)
}

func (s *Scheduler) resolveBothRevealed(matchID string, roundNo int) {
	if !s.resolveRound(matchID, roundNo) {
		return
	}
	s.clearTimer(matchID, domain.PhaseReveal, roundNo)

	m, ok := s.store.GetMatch(matchID)
	if !ok {
		return
	}

	commitA, _ := s.store.GetCommit(matchID, roundNo, m.AgentA)
	commitB, _ := s.store.GetCommit(matchID, roundNo, m.AgentB)
	revealA, okA := s.store.GetReveal(matchID, roundNo, m.AgentA)
	revealB, okB := s.store.GetReveal(matchID, roundNo, m.AgentB)
	if !okA || !okB {
		return
	}

	in := engine.RoundInput{MoveA: revealA.Move, MoveB: revealB.Move}
	if commitA != nil {
		in.PredictionA = commitA.Prediction
	}
	if commitB != nil {
		in.PredictionB = commitB.Prediction
	}

	result, err := engine.ProcessRound(m, s.store.Rounds(matchID), in, s.ruleset, time.Now())
	if err != nil {
		s.log.Error("round resolution failed", "match_id", matchID, "round", roundNo, "error", err)
		return
	}

	s.store.AddRound(result.Round)
	RoundsResolved.WithLabelValues(string(result.Round.Outcome)).Inc()

	next := result.Match
	if next.Status == domain.MatchFinished {
		s.store.PutMatch(next)
		s.sink.Publish(matchID, result.Events...)
		s.finishMatch(next)
		return
	}

	next.CurrentPhase = domain.PhaseResult
	s.store.PutMatch(next)
	s.sink.Publish(matchID, result.Events...)
	s.scheduleInterval(matchID, roundNo+1)
}

// ============ FORFEIT ROUNDS, INTERVAL, FINISH ============

// finalizeForfeitRound records a round decided by timeout or mismatch and
// moves the match along. Forfeits pay normal win points, never bonuses.
func (s *Scheduler) finalizeForfeitRound(
	m *domain.Match,
	roundNo int,
	outcome domain.RoundOutcome,
	moveA, moveB *domain.Move,
	violationA, violationB *string,
) {
	now := time.Now()

	var pointsA, pointsB int
	switch outcome {
	case domain.OutcomeForfeitB:
		pointsA = s.ruleset.NormalWinPoints
		m.WinsA++
	case domain.OutcomeForfeitA:
		pointsB = s.ruleset.NormalWinPoints
		m.WinsB++
	}

	round := &domain.Round{
		ID:         fmt.Sprintf("round_forfeit_%s_%d", m.ID, roundNo),
		MatchID:    m.ID,
		RoundNo:    roundNo,
		MoveA:      moveA,
		MoveB:      moveB,
		Outcome:    outcome,
		PointsA:    pointsA,
		PointsB:    pointsB,
		ViolationA: violationA,
		ViolationB: violationB,
		JudgedAt:   now,
		CreatedAt:  now,
	}
	s.store.AddRound(round)
	RoundsResolved.WithLabelValues(string(outcome)).Inc()

	m.ScoreA += pointsA
	m.ScoreB += pointsB
	m.CurrentRound = roundNo
	m.CurrentPhase = domain.PhaseResult

	events := []engine.Event{engine.RoundResult{
		MatchID:  m.ID,
		RoundNo:  roundNo,
		Outcome:  outcome,
		PointsA:  pointsA,
		PointsB:  pointsB,
		ScoreA:   m.ScoreA,
		ScoreB:   m.ScoreB,
		MoveA:    moveA,
		MoveB:    moveB,
		WinnerID: forfeitWinner(m, outcome),
	}}

	winner := rules.CheckMatchWinner(m, s.ruleset)
	if winner != "" {
		m.Status = domain.MatchFinished
		m.CurrentPhase = domain.PhaseFinished
		m.FinishedAt = &now
		if winner != rules.MatchDraw {
			w := winner
			m.WinnerID = &w
		}
		s.store.PutMatch(m)

		events = append(events, engine.MatchFinished{
			MatchID:     m.ID,
			WinnerID:    m.WinnerID,
			FinalScoreA: m.ScoreA,
			FinalScoreB: m.ScoreB,
		})
		s.sink.Publish(m.ID, events...)
		s.finishMatch(m)
		return
	}

	s.store.PutMatch(m)
	s.sink.Publish(m.ID, events...)
	s.scheduleInterval(m.ID, roundNo+1)
}

func forfeitWinner(m *domain.Match, outcome domain.RoundOutcome) *string {
	switch outcome {
	case domain.OutcomeForfeitB:
		return &m.AgentA
	case domain.OutcomeForfeitA:
		return &m.AgentB
	}
	return nil
}

// scheduleInterval parks the match in the spectator pause before the next
// commit window opens. Purely time driven.
func (s *Scheduler) scheduleInterval(matchID string, nextRound int) {
	m, ok := s.store.GetMatch(matchID)
	if !ok {
		return
	}

	deadline := time.Now().Add(s.timing.RoundInterval)
	m.CurrentPhase = domain.PhaseInterval
	m.PhaseDeadline = &deadline
	s.store.PutMatch(m)

	s.setTimer(matchID, domain.PhaseInterval, nextRound, s.timing.RoundInterval, func() {
		if _, err := s.transitionToCommit(matchID, nextRound); err != nil {
			s.log.Error("interval transition failed", "match_id", matchID, "round", nextRound, "error", err)
		}
	})
}

// finishMatch releases the agents and hands ratings off to the updater.
// The match's own score and winner are already durable; the rating update
// runs detached with a single fixed-delay retry.
func (s *Scheduler) finishMatch(m *domain.Match) {
	s.setAgentStatus(m.AgentA, domain.AgentPostMatch)
	s.setAgentStatus(m.AgentB, domain.AgentPostMatch)

	ActiveMatches.Dec()
	MatchesFinished.WithLabelValues("played").Inc()

	s.log.Info("match finished",
		"match_id", m.ID,
		"winner_id", winnerOrDraw(m),
		"score_a", m.ScoreA,
		"score_b", m.ScoreB,
	)

	if s.rating == nil {
		return
	}

	go func() {
		if s.applyRatings(m) {
			return
		}
		time.AfterFunc(s.timing.EloRetryDelay, func() {
			if !s.applyRatings(m) {
				s.log.Warn("rating update abandoned after retry", "match_id", m.ID)
			}
		})
	}()
}

// applyRatings runs the rating callback once and annotates the match with
// the deltas on success.
func (s *Scheduler) applyRatings(m *domain.Match) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	deltaA, deltaB, err := s.rating.ApplyMatchRatings(ctx, m)
	if err != nil {
		s.log.Warn("rating update failed", "match_id", m.ID, "error", err)
		return false
	}

	current, ok := s.store.GetMatch(m.ID)
	if !ok {
		return true
	}
	now := time.Now()
	current.EloChangeA = &deltaA
	current.EloChangeB = &deltaB
	current.EloUpdatedAt = &now
	s.store.PutMatch(current)
	return true
}

func (s *Scheduler) setAgentStatus(agentID string, status domain.AgentStatus) {
	agent, ok := s.store.GetAgent(agentID)
	if !ok {
		return
	}
	agent.Status = status
	agent.UpdatedAt = time.Now()
	s.store.PutAgent(agent)
}

func winnerOrDraw(m *domain.Match) string {
	if m.WinnerID == nil {
		return "draw"
	}
	return *m.WinnerID
}
