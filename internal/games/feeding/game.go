// Package feeding implements the catch-the-food game.
// Food falls from the top of the play area, accelerating as it drops; the
// player slides a catcher along the bottom to grab the good items and
// avoid the bad ones.
package feeding

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/engine"
	"github.com/vovakirdan/tui-party/internal/games/round"
	"github.com/vovakirdan/tui-party/internal/registry"
)

// ID is the stage and score identifier of the game.
const ID = "feeding"

// Visual characters for rendering
const (
	ActorChar = '▆'
	ActorEdge = '█'
)

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// Game implements the feeding game.
type Game struct {
	round.Round

	cfg     config.FeedingConfig
	catalog []engine.Kind
	spawner *engine.Spawner
	actor   engine.Actor

	caught, spoiled int
}

// New creates a new feeding game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Feeding Time"
}

// Rules returns the rule lines for the Idle screen.
func (g *Game) Rules() []string {
	cfg := g.cfg
	if cfg.Duration == 0 {
		cfg = config.DefaultPartyConfig().Feeding
	}
	var bad []string
	for _, f := range cfg.Foods {
		if f.Bad {
			bad = append(bad, f.Name)
		}
	}
	avoid := "the bad food"
	if len(bad) > 0 {
		avoid = joinNames(bad)
	}
	return []string{
		fmt.Sprintf("Catch the falling food for %d seconds, but avoid %s!", int(cfg.Duration.Std().Seconds()), avoid),
		"Hold Left/Right (or A/D) to move.",
		"Good food +1, bad food -1. Your score never drops below 0.",
	}
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	out := ""
	for i, n := range names {
		switch {
		case i == 0:
			out = n
		case i == len(names)-1:
			out += " and " + n
		default:
			out += ", " + n
		}
	}
	return out
}

// Reset initializes or restarts the game.
func (g *Game) Reset(env registry.Env) {
	g.cfg = env.Party.Feeding
	g.Setup(env, engine.SessionConfig{
		GameID:        ID,
		Duration:      g.cfg.Duration.Std(),
		CommitRanking: true,
	})
	g.World.SetFall(engine.FallProfile{
		MinSpeed: g.cfg.MinFallSpeed,
		MaxSpeed: g.cfg.MaxFallSpeed,
	})

	g.catalog = g.catalog[:0]
	for _, f := range g.cfg.Foods {
		c, ok := core.ColorByName(f.Color)
		if !ok {
			c = core.ColorWhite
		}
		pol := engine.Beneficial
		if f.Bad {
			pol = engine.Penalizing
		}
		glyph := '?'
		if r := []rune(f.Glyph); len(r) > 0 {
			glyph = r[0]
		}
		g.catalog = append(g.catalog, engine.Kind{
			Name:     f.Name,
			Glyph:    glyph,
			Color:    c,
			Polarity: pol,
			Weight:   f.Weight,
		})
	}

	g.actor = engine.Actor{
		X:      core.ClampF(g.cfg.Actor.Start, engine.MinActorPercent, engine.MaxActorPercent),
		Width:  g.cfg.Actor.Width,
		Height: g.cfg.Actor.Height,
		Speed:  g.cfg.Actor.Speed,
	}

	g.spawner = engine.NewSpawner(g.cfg.SpawnEvery.Std(), g.Sched, g.World, g.Gen, g.spawn)
	g.Session.OnActive(g.spawner.Start)
	g.Session.OnOver(func(time.Time) { g.spawner.Stop() })

	g.caught = 0
	g.spoiled = 0
}

// spawn creates one food item above the top edge.
func (g *Game) spawn(_ time.Time, gen engine.Generator) engine.Entity {
	kind := engine.Kind{Glyph: '?', Polarity: engine.Beneficial}
	if i := gen.NextKind(g.catalog); i >= 0 && i < len(g.catalog) {
		kind = g.catalog[i]
	}
	return engine.Entity{
		X:      gen.NextPosition(),
		Y:      g.cfg.SpawnY,
		Size:   g.cfg.FoodSize,
		Kind:   kind,
		Speed:  g.cfg.MinFallSpeed,
		Motion: engine.Fall,
	}
}

// Step advances the game to now.
func (g *Game) Step(now time.Time, in core.InputFrame) core.StepResult {
	if g.Session == nil {
		return core.StepResult{}
	}

	if g.Session.Phase() == core.PhaseIdle && in.Has(core.ActionConfirm) {
		if err := g.Start(now); err != nil {
			g.Log.Debug("start refused", "err", err)
		}
	}

	frames := g.Advance(now)
	if !g.Session.Active() {
		return g.Result()
	}

	g.actor.Move(in, frames)
	target := g.actor.Box(g.World.Area())

	rep := g.World.Step(now, frames, &target)
	for _, e := range rep.Collisions {
		if e.Kind.Polarity == engine.Penalizing {
			g.spoiled++
			g.Session.AddScore(-1)
			g.Log.Debug("bad food caught", "food", e.Kind.Name)
			continue
		}
		g.caught++
		g.Session.AddScore(1)
	}
	for range rep.Expired {
		g.Session.Emit(core.Event{Kind: core.EventExpired})
	}
	return g.Result()
}

// Actor returns the catcher.
func (g *Game) Actor() engine.Actor {
	return g.actor
}

// Caught returns how many good and bad items were caught this round.
func (g *Game) Caught() (good, bad int) {
	return g.caught, g.spoiled
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.Session == nil {
		return
	}

	if g.Session.Phase() == core.PhaseIdle {
		g.DrawHUD(dst, g.Title(), "")
		g.DrawIdle(dst, g.Title(), g.Rules())
		return
	}

	hint := ""
	if g.Session.Active() {
		hint = "hold ←/→ to move · m music · q quit"
	}
	g.DrawHUD(dst, g.Title(), hint)
	g.DrawEntities(dst)

	box := g.actor.Box(g.World.Area())
	rect := g.View.BoxToRect(box)
	g.DrawBox(dst, box, ActorChar, core.ColorBrightBlue)
	for y := rect.Y; y < rect.Bottom(); y++ {
		dst.SetColored(rect.X, y, ActorEdge, core.ColorBlue)
		dst.SetColored(rect.Right()-1, y, ActorEdge, core.ColorBlue)
	}

	if g.Session.Phase() == core.PhaseOver {
		g.DrawOver(dst)
	}
}
