// Package balloons implements the balloon popping game.
// Balloons rise from the bottom of the play area; the player pops them with
// the mouse or with a keyboard crosshair before they float away.
package balloons

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/engine"
	"github.com/vovakirdan/tui-party/internal/games/round"
	"github.com/vovakirdan/tui-party/internal/registry"
)

// ID is the stage and score identifier of the game.
const ID = "balloons"

// Visual characters for rendering
const (
	BalloonChar   = '█'
	CrosshairChar = '+'
)

// Crosshair movement while a direction is held
const (
	crosshairSpeedX = 1.5  // Percent of width per frame
	crosshairSpeedY = 10.0 // Pixels per frame
)

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// Game implements the balloon popping game.
type Game struct {
	round.Round

	cfg     config.BalloonsConfig
	catalog []engine.Kind
	spawner *engine.Spawner

	aimX, aimY float64 // Crosshair: percent, pixels
	popped     int
}

// New creates a new balloon game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Balloon Pop"
}

// Rules returns the rule lines for the Idle screen.
func (g *Game) Rules() []string {
	cfg := g.cfg
	if cfg.Duration == 0 {
		cfg = config.DefaultPartyConfig().Balloons
	}
	return []string{
		fmt.Sprintf("Pop as many balloons as you can in %d seconds.", int(cfg.Duration.Std().Seconds())),
		"Click a balloon, or aim with the arrows and press Enter.",
		fmt.Sprintf("Each balloon is worth %d point(s).", cfg.Points),
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(env registry.Env) {
	g.cfg = env.Party.Balloons
	g.Setup(env, engine.SessionConfig{
		GameID:   ID,
		Duration: g.cfg.Duration.Std(),
	})

	g.catalog = g.catalog[:0]
	for _, name := range g.cfg.Colors {
		c, ok := core.ColorByName(name)
		if !ok {
			g.Log.Warn("unknown balloon color", "color", name)
			c = core.ColorWhite
		}
		g.catalog = append(g.catalog, engine.Kind{
			Name:     name,
			Glyph:    BalloonChar,
			Color:    c,
			Polarity: engine.Beneficial,
		})
	}

	g.spawner = engine.NewSpawner(g.cfg.SpawnEvery.Std(), g.Sched, g.World, g.Gen, g.spawn)
	g.Session.OnActive(g.spawner.Start)
	g.Session.OnOver(func(time.Time) { g.spawner.Stop() })

	g.aimX = 50
	g.aimY = env.Party.Area.Height / 2
	g.popped = 0
}

// spawn creates one balloon just below the bottom edge.
func (g *Game) spawn(_ time.Time, gen engine.Generator) engine.Entity {
	size := math.Floor(gen.NextFloat(g.cfg.MinSize, g.cfg.MaxSize))
	kind := engine.Kind{Glyph: BalloonChar, Color: core.ColorWhite}
	if i := gen.NextKind(g.catalog); i >= 0 && i < len(g.catalog) {
		kind = g.catalog[i]
	}
	return engine.Entity{
		X:      gen.NextPosition(),
		Y:      g.World.Area().Height,
		Size:   size,
		Kind:   kind,
		Speed:  gen.NextFloat(g.cfg.MinSpeed, g.cfg.MaxSpeed),
		Motion: engine.Rise,
	}
}

// Step advances the game to now.
func (g *Game) Step(now time.Time, in core.InputFrame) core.StepResult {
	if g.Session == nil {
		return core.StepResult{}
	}

	aim := in.Has(core.ActionConfirm)
	if g.Session.Phase() == core.PhaseIdle && aim {
		aim = false
		if err := g.Start(now); err != nil {
			g.Log.Debug("start refused", "err", err)
		}
	}

	frames := g.Advance(now)
	if !g.Session.Active() {
		return g.Result()
	}

	g.moveCrosshair(in, frames)

	// Hits test against the positions the player saw, so they run before motion.
	for _, h := range in.Hits {
		g.pop(now, h.X, h.Y)
	}
	if aim {
		g.pop(now, g.World.Area().PercentToPx(g.aimX), g.aimY)
	}

	rep := g.World.Step(now, frames, nil)
	for range rep.Expired {
		g.Session.Emit(core.Event{Kind: core.EventExpired})
	}
	return g.Result()
}

func (g *Game) pop(now time.Time, x, y float64) {
	e, ok := g.World.HitTest(now, x, y)
	if !ok {
		return
	}
	g.popped++
	g.Session.AddScore(g.cfg.Points)
	g.Log.Debug("balloon popped", "id", e.ID, "color", e.Kind.Name)
}

func (g *Game) moveCrosshair(in core.InputFrame, frames float64) {
	area := g.World.Area()
	if in.IsHeld(core.ActionLeft) {
		g.aimX -= crosshairSpeedX * frames
	}
	if in.IsHeld(core.ActionRight) {
		g.aimX += crosshairSpeedX * frames
	}
	if in.IsHeld(core.ActionUp) {
		g.aimY -= crosshairSpeedY * frames
	}
	if in.IsHeld(core.ActionDown) {
		g.aimY += crosshairSpeedY * frames
	}
	g.aimX = core.ClampF(g.aimX, 0, 100)
	g.aimY = core.ClampF(g.aimY, 0, area.Height-1)
}

// Popped returns the number of balloons popped this round.
func (g *Game) Popped() int {
	return g.popped
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.Session == nil {
		return
	}

	switch g.Session.Phase() {
	case core.PhaseIdle:
		g.DrawHUD(dst, g.Title(), "")
		g.DrawIdle(dst, g.Title(), g.Rules())
		return
	case core.PhaseActive:
		g.DrawHUD(dst, g.Title(), "click or aim + Enter · m music · q quit")
	default:
		g.DrawHUD(dst, g.Title(), "")
	}

	g.DrawEntities(dst)

	if g.Session.Active() {
		col, row := g.View.ToCell(g.World.Area().PercentToPx(g.aimX), g.aimY)
		dst.SetColored(col, row, CrosshairChar, core.ColorBrightWhite)
	}

	if g.Session.Phase() == core.PhaseOver {
		g.DrawOver(dst)
	}
}
