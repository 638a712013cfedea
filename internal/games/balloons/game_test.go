package balloons

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/engine"
	"github.com/vovakirdan/tui-party/internal/ranking"
	"github.com/vovakirdan/tui-party/internal/registry"
)

const frame = time.Second / 60

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type recordingNav struct {
	stages []string
}

func (n *recordingNav) GoToStage(stage string) {
	n.stages = append(n.stages, stage)
}

func newTestGame(t *testing.T, player string) (*Game, *ranking.Aggregator, *recordingNav) {
	t.Helper()
	scores := ranking.NewAggregator(ranking.NewMemoryStore(), nil)
	nav := &recordingNav{}
	g := New()
	g.Reset(registry.Env{
		Runtime: core.RuntimeConfig{
			ScreenW: 80, ScreenH: 24, TickRate: 60, PlayerName: player,
		},
		Party:     config.DefaultPartyConfig(),
		Scores:    scores,
		Navigator: nav,
		NextStage: "feeding",
		Generator: &engine.FixedGenerator{Positions: []float64{50}, Values: []float64{60, 5}},
	})
	return g, scores, nav
}

func confirm() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	return in
}

func TestBalloonsStartNeedsName(t *testing.T) {
	g, _, _ := newTestGame(t, "")

	res := g.Step(t0, confirm())
	assert.Equal(t, core.PhaseIdle, res.State.Phase)
	assert.ErrorIs(t, g.Start(t0), engine.ErrNoPlayer)
}

func TestBalloonsSpawnAndRise(t *testing.T) {
	g, _, _ := newTestGame(t, "ana")
	require.Equal(t, core.PhaseActive, g.Step(t0, confirm()).State.Phase)

	now := t0
	idle := core.NewInputFrame()
	for now.Sub(t0) < 500*time.Millisecond {
		now = now.Add(frame)
		g.Step(now, idle)
	}
	ents := g.Entities()
	require.Len(t, ents, 1)
	b := ents[0]
	assert.Equal(t, 60.0, b.Size)
	assert.Equal(t, 5.0, b.Speed)
	assert.Equal(t, engine.Rise, b.Motion)

	now = now.Add(frame)
	g.Step(now, idle)
	moved, _ := g.World.Get(b.ID)
	assert.Less(t, moved.Y, b.Y)
}

func TestBalloonsDoubleHitScoresOnce(t *testing.T) {
	g, _, _ := newTestGame(t, "ana")
	g.Step(t0, confirm())

	now := t0
	idle := core.NewInputFrame()
	for i := 0; i < 50; i++ {
		now = now.Add(frame)
		g.Step(now, idle)
	}
	ents := g.Entities()
	require.NotEmpty(t, ents)
	b := ents[0]
	cx := g.World.Area().PercentToPx(b.X)
	cy := b.Y + b.Size/2

	in := core.NewInputFrame()
	in.AddHit(cx, cy)
	in.AddHit(cx+1, cy+1)
	now = now.Add(frame)
	res := g.Step(now, in)

	assert.Equal(t, 1, res.State.Score)
	assert.Equal(t, 1, g.Popped())
	scored := 0
	for _, ev := range res.Events {
		if ev.Kind == core.EventScored {
			scored++
		}
	}
	assert.Equal(t, 1, scored)

	popped, ok := g.World.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, engine.Resolved, popped.State)

	// Clicking the fading balloon again does nothing.
	in = core.NewInputFrame()
	in.AddHit(cx, cy)
	now = now.Add(frame)
	assert.Equal(t, 1, g.Step(now, in).State.Score)
}

func TestBalloonsCrosshairPop(t *testing.T) {
	g, _, _ := newTestGame(t, "ana")
	g.Step(t0, confirm())

	// Park the crosshair where the first balloon will pass.
	g.aimX = 50
	g.aimY = 300

	now := t0
	idle := core.NewInputFrame()
	for i := 0; i < 75; i++ {
		now = now.Add(frame)
		g.Step(now, idle)
	}
	b := g.Entities()[0]
	require.Less(t, b.Y, 300.0)
	require.Greater(t, b.Y+b.Size, 300.0)

	now = now.Add(frame)
	assert.Equal(t, 1, g.Step(now, confirm()).State.Score)
}

func TestBalloonsRoundEndsAndHandsOff(t *testing.T) {
	g, scores, nav := newTestGame(t, "ana")
	g.Step(t0, confirm())

	now := t0
	idle := core.NewInputFrame()
	var expired int
	for now.Sub(t0) < 20*time.Second {
		now = now.Add(frame)
		for _, ev := range g.Step(now, idle).Events {
			if ev.Kind == core.EventExpired {
				expired++
			}
		}
	}
	st := g.State()
	require.Equal(t, core.PhaseOver, st.Phase)
	assert.True(t, st.GameOver)
	assert.Positive(t, expired, "unpopped balloons float away")
	assert.Equal(t, []ranking.GameScore{{GameID: ID, Score: 0}}, scores.Scores())

	count := len(g.Entities())
	for i := 0; i < 60; i++ {
		now = now.Add(frame)
		g.Step(now, idle)
	}
	assert.Len(t, g.Entities(), count, "nothing spawns or moves after Over")
	assert.Empty(t, nav.stages)

	now = now.Add(3 * time.Second)
	g.Step(now, idle)
	assert.Equal(t, []string{"feeding"}, nav.stages)
}

func TestBalloonsNoSpawnOnLateFinalFrame(t *testing.T) {
	g, _, _ := newTestGame(t, "ana")
	g.Step(t0, confirm())

	g.Step(t0.Add(19600*time.Millisecond), core.NewInputFrame())
	spawned := g.spawner.Count()
	require.Positive(t, spawned)

	// The next tick is due exactly at the 20 s deadline.
	res := g.Step(t0.Add(20400*time.Millisecond), core.NewInputFrame())
	require.Equal(t, core.PhaseOver, res.State.Phase)
	assert.Equal(t, spawned, g.spawner.Count())
	assert.False(t, g.spawner.Running())
}

func TestBalloonsResetClearsRound(t *testing.T) {
	g, _, _ := newTestGame(t, "ana")
	g.Step(t0, confirm())
	now := t0
	for i := 0; i < 90; i++ {
		now = now.Add(frame)
		g.Step(now, core.NewInputFrame())
	}
	require.NotEmpty(t, g.Entities())

	g.Reset(g.Env)
	assert.Equal(t, core.PhaseIdle, g.State().Phase)
	assert.Empty(t, g.Entities())
	assert.Equal(t, 0, g.State().Score)
}

func TestBalloonsRender(t *testing.T) {
	g, _, _ := newTestGame(t, "ana")
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	assert.Contains(t, scr.String(), "BALLOON POP")
	assert.Contains(t, scr.String(), "Press Enter to start")

	g.Step(t0, confirm())
	now := t0
	for i := 0; i < 60; i++ {
		now = now.Add(frame)
		g.Step(now, core.NewInputFrame())
	}
	scr.Clear()
	g.Render(scr)
	assert.Contains(t, scr.Row(0), "Score: 0")
	assert.Contains(t, scr.String(), string(BalloonChar))
}

func TestBalloonsRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))
	game, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, "Balloon Pop", game.Title())
}
