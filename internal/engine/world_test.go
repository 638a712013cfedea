package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-party/internal/core"
)

const frame = time.Second / 60

var testArea = PlayArea{Width: 800, Height: 480}

var food = Kind{Name: "apple", Glyph: 'a', Polarity: Beneficial}

func TestFallProfileSpeedAt(t *testing.T) {
	p := FallProfile{MinSpeed: 3, MaxSpeed: 6}

	assert.Equal(t, 3.0, p.SpeedAt(-40, 480), "above the area")
	assert.Equal(t, 3.0, p.SpeedAt(0, 480))
	assert.InDelta(t, 4.5, p.SpeedAt(240, 480), 1e-9)
	assert.Equal(t, 6.0, p.SpeedAt(480, 480))
	assert.Equal(t, 6.0, p.SpeedAt(900, 480), "capped")
}

func TestWorldFallingEntityScoresOnce(t *testing.T) {
	ledger := NewLedger(DefaultFadeWindow)
	w := NewWorld(testArea, ledger)
	w.SetFall(FallProfile{MinSpeed: 3, MaxSpeed: 3})

	actor := Actor{X: 50, Width: 60, Height: 70}
	target := actor.Box(testArea)

	id := w.Add(Entity{X: 50, Y: 300, Size: 40, Kind: food, Motion: Fall})

	score := 0
	now := t0
	var hitAt time.Time
	for i := 0; i < 200 && hitAt.IsZero(); i++ {
		now = now.Add(frame)
		rep := w.Step(now, 1, &target)
		for range rep.Collisions {
			score++
			hitAt = now
		}
	}
	require.False(t, hitAt.IsZero(), "entity never reached the actor")
	assert.Equal(t, 1, score)

	e, ok := w.Get(id)
	require.True(t, ok)
	assert.Equal(t, Resolved, e.State)
	// First overlap: bottom edge crossed the actor's top at 410 px.
	assert.Greater(t, e.Y+e.Size, target.Top)
	assert.LessOrEqual(t, e.Y+e.Size, target.Top+3)

	// The entity keeps overlapping while it fades; nothing else scores.
	for now.Sub(hitAt) < DefaultFadeWindow-frame {
		now = now.Add(frame)
		rep := w.Step(now, 1, &target)
		score += len(rep.Collisions)
		assert.Empty(t, rep.Expired)
	}
	assert.Equal(t, 1, score)
	faded, ok := w.Get(id)
	require.True(t, ok, "still fading")
	assert.Equal(t, e.Y, faded.Y, "resolved entities do not move")

	now = hitAt.Add(DefaultFadeWindow)
	rep := w.Step(now, 1, &target)
	assert.Equal(t, 1, rep.Removed)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, ledger.Len())
	assert.Equal(t, 1, score)
}

func TestWorldExpiresFallingEntityBelowArea(t *testing.T) {
	w := NewWorld(testArea, nil)
	w.SetFall(FallProfile{MinSpeed: 3, MaxSpeed: 6})
	w.Add(Entity{X: 15, Y: 470, Size: 40, Kind: food, Motion: Fall})

	// Actor far away on the other side.
	actor := Actor{X: 90, Width: 60, Height: 70}
	target := actor.Box(testArea)

	var expired []Entity
	now := t0
	for i := 0; i < 100 && len(expired) == 0; i++ {
		now = now.Add(frame)
		expired = w.Step(now, 1, &target).Expired
	}
	require.Len(t, expired, 1)
	assert.Equal(t, Expired, expired[0].State)
	assert.GreaterOrEqual(t, expired[0].Y, testArea.Height+40)
	assert.Equal(t, 0, w.Len())
}

func TestWorldRisingEntityExpiresAboveArea(t *testing.T) {
	w := NewWorld(testArea, nil)
	w.Add(Entity{X: 50, Y: testArea.Height, Size: 50, Speed: 8, Motion: Rise})

	now := t0
	steps := 0
	for w.Len() > 0 && steps < 200 {
		now = now.Add(frame)
		w.Step(now, 1, nil)
		steps++
	}
	// 480 + 50 px at 8 px/frame.
	assert.Equal(t, 67, steps)
}

func TestWorldStepScalesWithFrames(t *testing.T) {
	w := NewWorld(testArea, nil)
	id := w.Add(Entity{X: 50, Y: 400, Size: 50, Speed: 4, Motion: Rise})

	w.Step(t0, 2.5, nil)
	e, _ := w.Get(id)
	assert.InDelta(t, 390, e.Y, 1e-9)
}

func TestWorldHitTestDoublePointerHit(t *testing.T) {
	ledger := NewLedger(DefaultFadeWindow)
	w := NewWorld(testArea, ledger)
	id := w.Add(Entity{X: 50, Y: 200, Size: 60, Speed: 5, Motion: Rise})

	score := 0
	resolved := 0
	// Both pointer events land in the same tick.
	for _, h := range []core.Hit{{X: 400, Y: 230}, {X: 401, Y: 231}} {
		if e, ok := w.HitTest(t0, h.X, h.Y); ok {
			score++
			if e.State == Resolved {
				resolved++
			}
		}
	}
	assert.Equal(t, 1, score)
	assert.Equal(t, 1, resolved)

	e, ok := w.Get(id)
	require.True(t, ok)
	assert.Equal(t, Resolved, e.State)
	assert.True(t, ledger.Busy(id))
}

func TestWorldHitTestPicksTopmostAndMisses(t *testing.T) {
	w := NewWorld(testArea, nil)
	under := w.Add(Entity{X: 50, Y: 200, Size: 60, Motion: Rise})
	over := w.Add(Entity{X: 52, Y: 210, Size: 60, Motion: Rise})

	e, ok := w.HitTest(t0, 410, 240)
	require.True(t, ok)
	assert.Equal(t, over, e.ID)

	// A second click on the fading top entity is absorbed.
	_, ok = w.HitTest(t0, 410, 240)
	assert.False(t, ok)
	got, _ := w.Get(under)
	assert.Equal(t, Active, got.State)

	_, ok = w.HitTest(t0, 10, 10)
	assert.False(t, ok, "empty space")
}

func TestWorldResolveOnlyOnce(t *testing.T) {
	w := NewWorld(testArea, nil)
	id := w.Add(Entity{X: 50, Y: 0, Size: 10})

	_, ok := w.Resolve(id, t0)
	assert.True(t, ok)
	_, ok = w.Resolve(id, t0.Add(time.Millisecond))
	assert.False(t, ok)
	_, ok = w.Resolve(id+100, t0)
	assert.False(t, ok)
}

func TestWorldResolvedNeverReturnsToActive(t *testing.T) {
	ledger := NewLedger(100 * time.Millisecond)
	w := NewWorld(testArea, ledger)
	id := w.Add(Entity{X: 50, Y: 100, Size: 40, Motion: Fall})
	w.Resolve(id, t0)

	// Ledger entry lapses at the same instant the entity is swept.
	w.Step(t0.Add(100*time.Millisecond), 1, nil)
	_, ok := w.Get(id)
	assert.False(t, ok)
	_, ok = w.Resolve(id, t0.Add(time.Second))
	assert.False(t, ok)
}

func TestWorldIDsIncrease(t *testing.T) {
	w := NewWorld(testArea, nil)
	a := w.Add(Entity{})
	b := w.Add(Entity{})
	w.Clear()
	c := w.Add(Entity{})
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestWorldResizeKeepsPercentages(t *testing.T) {
	w := NewWorld(testArea, nil)
	id := w.Add(Entity{X: 25, Y: 0, Size: 20})
	w.Resize(PlayArea{Width: 400, Height: 240})

	e, _ := w.Get(id)
	assert.Equal(t, 25.0, e.X)
	assert.Equal(t, 90.0, e.Box(w.Area()).Left)
}

func TestActorMoveClamps(t *testing.T) {
	a := Actor{X: 50, Width: 60, Height: 70, Speed: 5}
	in := core.NewInputFrame()

	in.Hold(core.ActionLeft, true)
	for i := 0; i < 20; i++ {
		a.Move(in, 1)
	}
	assert.Equal(t, MinActorPercent, a.X)

	in.Hold(core.ActionLeft, false)
	in.Hold(core.ActionRight, true)
	a.Move(in, 2)
	assert.Equal(t, 20.0, a.X)

	in.Hold(core.ActionLeft, true)
	a.Move(in, 1)
	assert.Equal(t, 20.0, a.X, "opposite directions cancel")

	box := a.Box(testArea)
	assert.Equal(t, core.Box{Left: 130, Top: 410, Right: 190, Bottom: 480}, box)
}

func TestLedgerAcceptAndExpire(t *testing.T) {
	l := NewLedger(500 * time.Millisecond)

	assert.True(t, l.Accept(1, t0))
	assert.False(t, l.Accept(1, t0.Add(100*time.Millisecond)))
	assert.True(t, l.Accept(2, t0.Add(100*time.Millisecond)))

	assert.Equal(t, 0, l.Expire(t0.Add(499*time.Millisecond)))
	assert.Equal(t, 1, l.Expire(t0.Add(500*time.Millisecond)))
	assert.False(t, l.Busy(1))
	assert.True(t, l.Busy(2))

	l.Release(2)
	assert.Equal(t, 0, l.Len())

	l.Accept(3, t0)
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, DefaultFadeWindow, NewLedger(0).Window())
}
