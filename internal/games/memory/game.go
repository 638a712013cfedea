// Package memory implements the card matching game.
// Every card is shown for a short preview, then turned face-down; the
// player flips two at a time looking for pairs before the clock runs out.
package memory

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
const ID = "memory"

// Visual characters for rendering
const (
	HiddenChar = '▒'
	HiddenMark = '?'
)

// cardFill is the share of a grid cell covered by its card.
const cardFill = 0.8

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// Card is one face of the deck.
type Card struct {
	ID      engine.EntityID
	Kind    engine.Kind
	Col     int
	Row     int
	Flipped bool
	Matched bool
}

// FaceUp reports whether the card's character is visible.
func (c Card) FaceUp() bool {
	return c.Flipped || c.Matched
}

// Game implements the memory game.
type Game struct {
	round.Round

	cfg   config.MemoryConfig
	cards []Card
	cols  int
	rows  int
	cell  float64 // Grid cell side in pixels
	left  float64 // Grid offset in pixels
	top   float64

	open       []int // Indexes of face-up unmatched cards, at most 2
	evaluating bool
	pairs      int
	cursor     int
}

// New creates a new memory game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Memory"
}

// Rules returns the rule lines for the Idle screen.
func (g *Game) Rules() []string {
	cfg := g.cfg
	if cfg.Duration == 0 {
		cfg = config.DefaultPartyConfig().Memory
	}
	return []string{
		fmt.Sprintf("Memorize the cards: they stay face-up for %d seconds.", int(cfg.Preview.Std().Seconds())),
		fmt.Sprintf("Then find all %d pairs within %d seconds.", len(cfg.Characters), int(cfg.Duration.Std().Seconds())),
		fmt.Sprintf("Click a card, or move with the arrows and press Enter. Each pair: %d points.", cfg.MatchPoints),
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(env registry.Env) {
	g.cfg = env.Party.Memory
	g.Setup(env, engine.SessionConfig{
		GameID:   ID,
		Duration: g.cfg.Duration.Std(),
		Preview:  g.cfg.Preview.Std(),
	})
	g.Session.OnActive(func(time.Time) { g.concealAll() })

	g.deal()
	g.layout()

	g.open = g.open[:0]
	g.evaluating = false
	g.pairs = 0
	g.cursor = 0
}

// deal builds two cards per character and shuffles them.
func (g *Game) deal() {
	g.cards = g.cards[:0]
	for _, ch := range g.cfg.Characters {
		c, ok := core.ColorByName(ch.Color)
		if !ok {
			c = core.ColorWhite
		}
		glyph := HiddenMark
		if r := []rune(ch.Glyph); len(r) > 0 {
			glyph = r[0]
		}
		kind := engine.Kind{Name: ch.Name, Glyph: glyph, Color: c, Polarity: engine.Beneficial}
		g.cards = append(g.cards, Card{Kind: kind}, Card{Kind: kind})
	}
	g.Gen.Shuffle(len(g.cards), func(i, j int) {
		g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	})

	for i := range g.cards {
		g.cards[i].ID = g.World.NextID()
	}
}

// layout places the cards on a centered grid of square cells.
func (g *Game) layout() {
	g.cols = max(1, g.cfg.Columns)
	g.rows = max(1, (len(g.cards)+g.cols-1)/g.cols)

	area := g.World.Area()
	g.cell = min(area.Width/float64(g.cols), area.Height/float64(g.rows))
	g.left = (area.Width - g.cell*float64(g.cols)) / 2
	g.top = (area.Height - g.cell*float64(g.rows)) / 2

	for i := range g.cards {
		g.cards[i].Col = i % g.cols
		g.cards[i].Row = i / g.cols
	}
}

// CardBox returns the pixel box of card i.
func (g *Game) CardBox(i int) core.Box {
	c := g.cards[i]
	size := g.cell * cardFill
	pad := (g.cell - size) / 2
	x := g.left + float64(c.Col)*g.cell + pad
	y := g.top + float64(c.Row)*g.cell + pad
	return core.BoxAt(x, y, size, size)
}

// Cards returns a copy of the deck in layout order.
func (g *Game) Cards() []Card {
	out := make([]Card, len(g.cards))
	copy(out, g.cards)
	return out
}

// Pairs returns the number of pairs found this round.
func (g *Game) Pairs() int {
	return g.pairs
}

// Cursor returns the index of the keyboard-selected card.
func (g *Game) Cursor() int {
	return g.cursor
}

// Evaluating reports whether a flipped pair is waiting to be resolved.
func (g *Game) Evaluating() bool {
	return g.evaluating
}

// Entities exposes the cards as static entities. Matched cards are
// Resolved; everything else is Active.
func (g *Game) Entities() []engine.Entity {
	if g.World == nil {
		return nil
	}
	area := g.World.Area()
	out := make([]engine.Entity, 0, len(g.cards))
	for i, c := range g.cards {
		b := g.CardBox(i)
		e := engine.Entity{
			ID:     c.ID,
			X:      area.PxToPercent(b.Left + b.Width()/2),
			Y:      b.Top,
			Size:   b.Width(),
			Kind:   c.Kind,
			Motion: engine.Static,
			State:  engine.Active,
		}
		if c.Matched {
			e.State = engine.Resolved
		}
		out = append(out, e)
	}
	return out
}

// Step advances the game to now.
func (g *Game) Step(now time.Time, in core.InputFrame) core.StepResult {
	if g.Session == nil {
		return core.StepResult{}
	}

	pick := in.Has(core.ActionConfirm)
	if g.Session.Phase() == core.PhaseIdle && pick {
		pick = false
		if err := g.Start(now); err != nil {
			g.Log.Debug("start refused", "err", err)
		}
	}

	g.Advance(now)
	if !g.Session.Active() {
		return g.Result()
	}

	g.moveCursor(in)
	for _, h := range in.Hits {
		if i := g.cardAt(h.X, h.Y); i >= 0 {
			g.cursor = i
			g.Select(now, i)
		}
	}
	if pick {
		g.Select(now, g.cursor)
	}
	return g.Result()
}

func (g *Game) moveCursor(in core.InputFrame) {
	if len(g.cards) == 0 {
		return
	}
	col, row := g.cursor%g.cols, g.cursor/g.cols
	switch {
	case in.Has(core.ActionLeft):
		col = (col - 1 + g.cols) % g.cols
	case in.Has(core.ActionRight):
		col = (col + 1) % g.cols
	case in.Has(core.ActionUp):
		row = (row - 1 + g.rows) % g.rows
	case in.Has(core.ActionDown):
		row = (row + 1) % g.rows
	default:
		return
	}
	if i := row*g.cols + col; i < len(g.cards) {
		g.cursor = i
	}
}

// cardAt returns the index of the card under (x, y) pixels, or -1.
func (g *Game) cardAt(x, y float64) int {
	for i := range g.cards {
		if g.CardBox(i).Contains(x, y) {
			return i
		}
	}
	return -1
}

// Select flips card i if the rules allow it. The second flip of a pair
// schedules its evaluation. Returns true if the card was flipped.
func (g *Game) Select(now time.Time, i int) bool {
	if i < 0 || i >= len(g.cards) {
		return false
	}
	c := &g.cards[i]
	if !g.Session.Active() || g.evaluating || len(g.open) >= 2 || c.Flipped || c.Matched {
		return false
	}
	c.Flipped = true
	g.open = append(g.open, i)
	if len(g.open) < 2 {
		return true
	}

	g.evaluating = true
	a, b := g.open[0], g.open[1]
	if g.cards[a].Kind.Name == g.cards[b].Kind.Name {
		g.Sched.After(now, g.cfg.MatchDelay.Std(), func(at time.Time) { g.match(at, a, b) })
	} else {
		g.Sched.After(now, g.cfg.MismatchDelay.Std(), func(time.Time) { g.mismatch(a, b) })
	}
	return true
}

func (g *Game) match(now time.Time, a, b int) {
	if !g.Session.Active() {
		return
	}
	g.cards[a].Matched = true
	g.cards[b].Matched = true
	g.open = g.open[:0]
	g.evaluating = false
	g.pairs++
	g.Session.AddScore(g.cfg.MatchPoints)
	g.Log.Debug("pair found", "card", g.cards[a].Kind.Name, "pairs", g.pairs)

	if g.pairs*2 >= len(g.cards) {
		g.Session.Finish(now)
	}
}

func (g *Game) mismatch(a, b int) {
	if !g.Session.Active() {
		return
	}
	g.cards[a].Flipped = false
	g.cards[b].Flipped = false
	g.open = g.open[:0]
	g.evaluating = false
}

func (g *Game) concealAll() {
	for i := range g.cards {
		g.cards[i].Flipped = false
	}
	g.open = g.open[:0]
	g.evaluating = false
}

// Won reports whether every pair was found.
func (g *Game) Won() bool {
	return len(g.cards) > 0 && g.pairs*2 >= len(g.cards)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.Session == nil {
		return
	}

	phase := g.Session.Phase()
	switch phase {
	case core.PhaseIdle:
		g.DrawHUD(dst, g.Title(), "")
		g.DrawIdle(dst, g.Title(), g.Rules())
		return
	case core.PhasePreviewing:
		g.DrawHUD(dst, g.Title(), "memorize the cards!")
	case core.PhaseActive:
		g.DrawHUD(dst, g.Title(), fmt.Sprintf("pairs %d/%d · click or arrows + Enter · q quit", g.pairs, len(g.cards)/2))
	default:
		g.DrawHUD(dst, g.Title(), "")
	}

	for i, c := range g.cards {
		box := g.CardBox(i)
		rect := g.View.BoxToRect(box)
		switch {
		case phase == core.PhasePreviewing || c.FaceUp():
			color := c.Kind.Color
			if c.Matched {
				color = core.ColorGray
			}
			g.DrawBox(dst, box, ' ', core.ColorDefault)
			dst.DrawBox(rect, color)
			cx, cy := rect.Center()
			dst.SetColored(cx, cy, c.Kind.Glyph, color)
		default:
			g.DrawBox(dst, box, HiddenChar, core.ColorBlue)
			cx, cy := rect.Center()
			dst.SetColored(cx, cy, HiddenMark, core.ColorBrightWhite)
		}
		if phase == core.PhaseActive && i == g.cursor {
			dst.DrawBox(rect, core.ColorBrightYellow)
		}
	}

	if phase == core.PhaseOver {
		if g.Won() {
			g.DrawBanner(dst, "ALL PAIRS FOUND!")
		} else {
			g.DrawOver(dst)
		}
	}
}
