package engine

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/core"
)

var (
	// ErrNoPlayer is returned by Start when the player name is empty.
	ErrNoPlayer = errors.New("engine: player name is required")
	// ErrNotIdle is returned by Start outside the Idle phase.
	ErrNotIdle = errors.New("engine: session is not idle")
)

// SessionConfig describes one kind of round.
type SessionConfig struct {
	GameID        string
	Duration      time.Duration // Countdown length of the Active phase
	Preview       time.Duration // Reveal delay before Active; 0 skips Previewing
	HandoffDelay  time.Duration // Delay between Over and navigation
	NextStage     string        // Stage passed to the navigator; empty disables handoff
	CommitRanking bool          // Commit the aggregate total on Over
	Logger        *log.Logger
}

// SessionDeps are the collaborators a session drives. Every field except
// Scheduler may be nil.
type SessionDeps struct {
	Scheduler *Scheduler
	World     *World
	Scores    ScoreAggregator
	Navigator Navigator
}

// Session is the state machine of one round:
//
//	Idle -> Previewing -> Active -> Over
//	Idle -> Active -> Over
//
// Every score mutation and phase change goes through its methods. Events it
// schedules carry the epoch they were scheduled in; Reset and Stop bump the
// epoch, so an event left over from an earlier round does nothing even if it
// somehow survives cancellation.
type Session struct {
	cfg    SessionConfig
	sched  *Scheduler
	world  *World
	scores ScoreAggregator
	nav    Navigator
	logger *log.Logger

	timer    *Countdown
	phase    core.Phase
	score    int
	player   string
	epoch    uint64
	reported bool
	handoff  EventID
	events   []core.Event
	last     time.Time

	onActive func(now time.Time)
	onOver   func(now time.Time)
}

// NewSession creates an Idle session.
func NewSession(cfg SessionConfig, deps SessionDeps) *Session {
	if deps.Scheduler == nil {
		deps.Scheduler = NewScheduler()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		cfg:    cfg,
		sched:  deps.Scheduler,
		world:  deps.World,
		scores: deps.Scores,
		nav:    deps.Navigator,
		logger: logger.With("game", cfg.GameID),
	}
	s.timer = NewCountdown(cfg.Duration, s.timeUp)
	return s
}

// OnActive registers a hook run on entering Active.
func (s *Session) OnActive(fn func(now time.Time)) {
	s.onActive = fn
}

// OnOver registers a hook run once on entering Over, before the score is
// reported.
func (s *Session) OnOver(fn func(now time.Time)) {
	s.onOver = fn
}

// Start is the explicit start action. The name is trimmed; an empty name
// leaves the session Idle.
func (s *Session) Start(now time.Time, player string) error {
	player = strings.TrimSpace(player)
	if player == "" {
		return ErrNoPlayer
	}
	if s.phase != core.PhaseIdle {
		return ErrNotIdle
	}
	s.player = player
	s.last = now

	if s.cfg.Preview > 0 {
		s.phase = core.PhasePreviewing
		s.logger.Debug("session previewing", "player", player, "preview", s.cfg.Preview)
		s.sched.After(now, s.cfg.Preview, s.guard(s.activate))
		return nil
	}
	s.activate(now)
	return nil
}

func (s *Session) activate(now time.Time) {
	if s.phase == core.PhaseActive || s.phase == core.PhaseOver {
		return
	}
	s.phase = core.PhaseActive
	s.timer.Arm(now)
	s.logger.Debug("session active", "player", s.player, "duration", s.cfg.Duration)
	if s.onActive != nil {
		s.onActive(now)
	}
}

// Advance runs due scheduled events and then checks the countdown.
// Called once per frame before any motion. Events due at or after the
// countdown's deadline are left for Finish to cancel, so a late frame
// cannot score past the end of the round.
func (s *Session) Advance(now time.Time) {
	s.last = now
	drainTo := now
	if end, ok := s.timer.Deadline(); ok && !now.Before(end) {
		drainTo = end.Add(-time.Nanosecond)
	}
	s.sched.Drain(drainTo)
	s.timer.Update(now)
}

func (s *Session) timeUp(now time.Time) {
	s.Finish(now)
}

// Finish moves an Active session to Over. It stops the countdown, cancels
// every pending event, reports the score once, optionally commits the
// ranking, and schedules the handoff. Calls outside Active are no-ops, so a
// win condition and the countdown firing in the same frame report once.
// Returns true if this call ended the round.
func (s *Session) Finish(now time.Time) bool {
	if s.phase != core.PhaseActive {
		return false
	}
	s.phase = core.PhaseOver
	s.last = now
	s.timer.Stop(now)
	s.sched.CancelAll()
	s.events = append(s.events, core.Event{Kind: core.EventOver})

	if s.onOver != nil {
		s.onOver(now)
	}
	s.report()

	if s.nav != nil && s.cfg.NextStage != "" {
		next := s.cfg.NextStage
		s.handoff = s.sched.After(now, s.cfg.HandoffDelay, s.guard(func(time.Time) {
			s.logger.Debug("handoff", "stage", next)
			s.nav.GoToStage(next)
		}))
	}
	return true
}

func (s *Session) report() {
	if s.reported {
		return
	}
	s.reported = true
	s.logger.Info("round over", "player", s.player, "score", s.score)
	if s.scores == nil {
		return
	}
	s.scores.RecordGameScore(s.cfg.GameID, s.score)
	if s.cfg.CommitRanking {
		total := s.scores.AggregateTotal()
		changed := s.scores.CommitToRanking(s.player, total)
		s.logger.Info("ranking commit", "player", s.player, "total", total, "changed", changed)
	}
}

// AddScore applies delta while Active and clamps the score at zero.
// Returns the change actually applied.
func (s *Session) AddScore(delta int) int {
	if s.phase != core.PhaseActive || delta == 0 {
		return 0
	}
	before := s.score
	s.score = max(0, s.score+delta)
	applied := s.score - before

	switch {
	case delta > 0:
		s.events = append(s.events, core.Event{Kind: core.EventScored, Delta: applied})
	case delta < 0:
		s.events = append(s.events, core.Event{Kind: core.EventPenalty, Delta: applied})
	}
	return applied
}

// Emit queues an event for the host.
func (s *Session) Emit(ev core.Event) {
	s.events = append(s.events, ev)
}

// TakeEvents returns and clears the queued events.
func (s *Session) TakeEvents() []core.Event {
	ev := s.events
	s.events = nil
	return ev
}

// Reset returns the session to Idle: pending events, countdown, score,
// and the bound world's entities and ledger are all cleared.
func (s *Session) Reset() {
	s.Stop()
	s.timer = NewCountdown(s.cfg.Duration, s.timeUp)
	s.phase = core.PhaseIdle
	s.score = 0
	s.player = ""
	s.last = time.Time{}
	s.reported = false
	s.events = nil
	if s.world != nil {
		s.world.Clear()
	}
}

// Stop tears the session down without changing its phase: every pending
// event is cancelled and stale ones are disarmed. The countdown freezes at
// the last frame the session saw.
func (s *Session) Stop() {
	s.epoch++
	s.sched.CancelAll()
	s.handoff = 0
	s.timer.Stop(s.last)
}

func (s *Session) guard(fn Action) Action {
	epoch := s.epoch
	return func(now time.Time) {
		if s.epoch != epoch {
			return
		}
		fn(now)
	}
}

// Phase returns the current phase.
func (s *Session) Phase() core.Phase {
	return s.phase
}

// Active reports whether the round is being played.
func (s *Session) Active() bool {
	return s.phase == core.PhaseActive
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Player returns the name the round was started with.
func (s *Session) Player() string {
	return s.player
}

// Reported reports whether the final score was handed to the aggregator.
func (s *Session) Reported() bool {
	return s.reported
}

// HandoffPending reports whether the post-round navigation is scheduled.
func (s *Session) HandoffPending() bool {
	return s.handoff != 0 && s.sched.Pending(s.handoff)
}

// Scheduler returns the session's event queue.
func (s *Session) Scheduler() *Scheduler {
	return s.sched
}

// Countdown returns the round countdown.
func (s *Session) Countdown() *Countdown {
	return s.timer
}

// Config returns the session configuration.
func (s *Session) Config() SessionConfig {
	return s.cfg
}

// State returns the presentation snapshot at now.
func (s *Session) State(now time.Time) core.GameState {
	return core.GameState{
		Phase:     s.phase,
		Score:     s.score,
		Remaining: s.timer.Remaining(now),
		Duration:  s.cfg.Duration,
		GameOver:  s.phase == core.PhaseOver,
	}
}
