// Package round holds the plumbing shared by the timed mini-games: the
// session, world and frame clock of one round, and the Idle/HUD/Over
// screens drawn around the play area.
package round

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/engine"
	"github.com/vovakirdan/tui-party/internal/registry"
)

// Round is embedded by every game. It owns the per-round engine objects and
// is rebuilt on each Reset.
type Round struct {
	Env     registry.Env
	Sched   *engine.Scheduler
	World   *engine.World
	Session *engine.Session
	Frames  *engine.FrameClock
	Gen     engine.Generator
	View    core.Viewport
	Log     *log.Logger

	now time.Time
}

// Setup discards the previous round and builds a fresh Idle one.
func (r *Round) Setup(env registry.Env, cfg engine.SessionConfig) {
	r.Close()

	r.Env = env
	r.Log = env.LoggerOrDiscard()
	r.Gen = env.GeneratorOrSeeded()
	r.Sched = engine.NewScheduler()
	r.World = engine.NewWorld(env.Area(), engine.NewLedger(env.Party.Session.FadeWindow.Std()))
	r.Frames = engine.NewFrameClock(env.Runtime.TickRate)

	cfg.HandoffDelay = env.Party.Session.HandoffDelay.Std()
	cfg.NextStage = env.NextStage
	cfg.Logger = r.Log
	r.Session = engine.NewSession(cfg, engine.SessionDeps{
		Scheduler: r.Sched,
		World:     r.World,
		Scores:    env.Scores,
		Navigator: env.Navigator,
	})
	r.Resize(env.Runtime.ScreenW, env.Runtime.ScreenH)
	r.now = time.Time{}
}

// Start runs the start action under the configured player name.
func (r *Round) Start(now time.Time) error {
	if r.Session == nil {
		return fmt.Errorf("round: not reset")
	}
	if err := r.Session.Start(now, r.Env.Runtime.PlayerName); err != nil {
		return err
	}
	r.now = now
	r.Frames.Reset(now)
	return nil
}

// Advance moves the round clock to now, runs due events and the countdown,
// and returns how many nominal frames elapsed since the previous call.
func (r *Round) Advance(now time.Time) float64 {
	_, frames := r.Frames.Advance(now)
	r.now = now
	r.Session.Advance(now)
	return frames
}

// Result packages the current state with the events queued this frame.
func (r *Round) Result() core.StepResult {
	return core.StepResult{
		State:  r.State(),
		Events: r.Session.TakeEvents(),
	}
}

// State returns the session snapshot at the latest frame.
func (r *Round) State() core.GameState {
	if r.Session == nil {
		return core.GameState{}
	}
	return r.Session.State(r.now)
}

// Entities returns the live entities.
func (r *Round) Entities() []engine.Entity {
	if r.World == nil {
		return nil
	}
	return r.World.Entities()
}

// Resize recomputes the cell mapping. The pixel play area is fixed by
// configuration, so entity positions are unaffected.
func (r *Round) Resize(cols, rows int) {
	area := r.Env.Area()
	r.View = core.NewViewport(area.Width, area.Height, cols, rows, core.HUDRows)
	r.Env.Runtime.ScreenW = cols
	r.Env.Runtime.ScreenH = rows
}

// Close cancels every scheduled event of the round.
func (r *Round) Close() {
	if r.Session != nil {
		r.Session.Stop()
	}
}
