package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-party/internal/core"
)

type commit struct {
	name  string
	total int
}

type fakeScores struct {
	games   map[string]int
	records int
	commits []commit
}

func newFakeScores() *fakeScores {
	return &fakeScores{games: make(map[string]int)}
}

func (f *fakeScores) RecordGameScore(gameID string, score int) {
	f.games[gameID] = score
	f.records++
}

func (f *fakeScores) AggregateTotal() int {
	total := 0
	for _, s := range f.games {
		total += s
	}
	return total
}

func (f *fakeScores) CommitToRanking(name string, total int) bool {
	f.commits = append(f.commits, commit{name, total})
	return true
}

type fakeNav struct {
	stages []string
}

func (n *fakeNav) GoToStage(stage string) {
	n.stages = append(n.stages, stage)
}

func newTestSession(cfg SessionConfig) (*Session, *fakeScores, *fakeNav, *World) {
	scores := newFakeScores()
	nav := &fakeNav{}
	world := NewWorld(testArea, nil)
	s := NewSession(cfg, SessionDeps{
		Scheduler: NewScheduler(),
		World:     world,
		Scores:    scores,
		Navigator: nav,
	})
	return s, scores, nav, world
}

func TestSessionStartRequiresName(t *testing.T) {
	s, _, _, _ := newTestSession(SessionConfig{GameID: "feeding", Duration: time.Second})

	assert.ErrorIs(t, s.Start(t0, ""), ErrNoPlayer)
	assert.ErrorIs(t, s.Start(t0, "   "), ErrNoPlayer)
	assert.Equal(t, core.PhaseIdle, s.Phase())

	require.NoError(t, s.Start(t0, "  ana "))
	assert.Equal(t, "ana", s.Player())
	assert.Equal(t, core.PhaseActive, s.Phase())
	assert.ErrorIs(t, s.Start(t0, "ana"), ErrNotIdle)
}

func TestSessionPreviewThenActive(t *testing.T) {
	s, _, _, _ := newTestSession(SessionConfig{
		GameID:   "memory",
		Duration: 30 * time.Second,
		Preview:  4 * time.Second,
	})
	var activeAt time.Time
	s.OnActive(func(now time.Time) { activeAt = now })

	require.NoError(t, s.Start(t0, "ana"))
	assert.Equal(t, core.PhasePreviewing, s.Phase())
	assert.Zero(t, s.AddScore(10), "no scoring while previewing")

	s.Advance(t0.Add(3999 * time.Millisecond))
	assert.Equal(t, core.PhasePreviewing, s.Phase())
	assert.Equal(t, 30*time.Second, s.State(t0.Add(3999*time.Millisecond)).Remaining)

	s.Advance(t0.Add(4 * time.Second))
	assert.Equal(t, core.PhaseActive, s.Phase())
	assert.Equal(t, t0.Add(4*time.Second), activeAt)
	assert.Equal(t, 30, s.Countdown().RemainingSeconds(activeAt))
}

func TestSessionCountdownEndsRoundAndHandsOff(t *testing.T) {
	s, scores, nav, _ := newTestSession(SessionConfig{
		GameID:       "balloons",
		Duration:     20 * time.Second,
		HandoffDelay: 3 * time.Second,
		NextStage:    "feeding",
	})
	overs := 0
	s.OnOver(func(time.Time) { overs++ })

	require.NoError(t, s.Start(t0, "ana"))
	s.AddScore(1)
	s.AddScore(1)

	s.Advance(t0.Add(19999 * time.Millisecond))
	assert.Equal(t, core.PhaseActive, s.Phase())

	end := t0.Add(20 * time.Second)
	s.Advance(end)
	assert.Equal(t, core.PhaseOver, s.Phase())
	assert.True(t, s.State(end).GameOver)
	assert.Equal(t, 1, overs)
	assert.Equal(t, 1, scores.records)
	assert.Equal(t, 2, scores.games["balloons"])
	assert.Empty(t, scores.commits, "ranking commit not configured")
	assert.True(t, s.HandoffPending())

	assert.Zero(t, s.AddScore(5), "score is frozen after Over")

	s.Advance(end.Add(2999 * time.Millisecond))
	assert.Empty(t, nav.stages)
	s.Advance(end.Add(3 * time.Second))
	assert.Equal(t, []string{"feeding"}, nav.stages)
	s.Advance(end.Add(time.Minute))
	assert.Equal(t, []string{"feeding"}, nav.stages)
	assert.Equal(t, 1, scores.records)
}

func TestSessionLateFrameDropsEventsPastDeadline(t *testing.T) {
	s, scores, _, _ := newTestSession(SessionConfig{GameID: "memory", Duration: 30 * time.Second})
	require.NoError(t, s.Start(t0, "ana"))

	var early, atEnd, late bool
	s.Scheduler().After(t0, 29900*time.Millisecond, func(time.Time) {
		early = true
		s.AddScore(1)
	})
	s.Scheduler().After(t0, 30*time.Second, func(time.Time) {
		atEnd = true
		s.AddScore(10)
	})
	s.Scheduler().After(t0, 30300*time.Millisecond, func(time.Time) {
		late = true
		s.AddScore(10)
	})

	// One frame lands well after the deadline.
	s.Advance(t0.Add(30500 * time.Millisecond))

	assert.Equal(t, core.PhaseOver, s.Phase())
	assert.True(t, early)
	assert.False(t, atEnd)
	assert.False(t, late)
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, 1, scores.games["memory"])
	assert.Zero(t, s.Scheduler().Len(), "leftovers are cancelled on Over")
}

func TestSessionStopFreezesCountdownAtLastFrame(t *testing.T) {
	s, _, _, _ := newTestSession(SessionConfig{GameID: "balloons", Duration: 20 * time.Second})
	require.NoError(t, s.Start(t0, "ana"))

	s.Advance(t0.Add(5 * time.Second))
	s.Stop()

	later := t0.Add(time.Minute)
	assert.Equal(t, 15*time.Second, s.State(later).Remaining)
	assert.Equal(t, 15*time.Second, s.Countdown().Remaining(later))
	assert.False(t, s.Countdown().Active())
}

func TestSessionWinAndTimeoutInSameFrameReportOnce(t *testing.T) {
	s, scores, nav, _ := newTestSession(SessionConfig{
		GameID:        "memory",
		Duration:      time.Second,
		HandoffDelay:  time.Second,
		NextStage:     "balloons",
		CommitRanking: true,
	})
	require.NoError(t, s.Start(t0, "ana"))
	s.AddScore(60)

	end := t0.Add(time.Second)
	assert.True(t, s.Finish(end), "win condition")
	s.Advance(end) // countdown also due
	assert.False(t, s.Finish(end))

	assert.Equal(t, 1, scores.records)
	assert.Equal(t, []commit{{"ana", 60}}, scores.commits)

	s.Advance(end.Add(time.Second))
	assert.Equal(t, []string{"balloons"}, nav.stages)
}

func TestSessionScoreNeverNegative(t *testing.T) {
	s, _, _, _ := newTestSession(SessionConfig{GameID: "feeding", Duration: time.Minute})

	assert.Zero(t, s.AddScore(1), "Idle")
	require.NoError(t, s.Start(t0, "ana"))

	assert.Equal(t, 1, s.AddScore(1))
	assert.Equal(t, -1, s.AddScore(-1))
	assert.Equal(t, 0, s.AddScore(-1))
	assert.Equal(t, 0, s.AddScore(-5))
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 1, s.AddScore(1))

	events := s.TakeEvents()
	kinds := make([]core.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []core.EventKind{
		core.EventScored, core.EventPenalty, core.EventPenalty, core.EventPenalty, core.EventScored,
	}, kinds)
	assert.Empty(t, s.TakeEvents())
}

func TestSessionResetClearsEverything(t *testing.T) {
	s, scores, nav, world := newTestSession(SessionConfig{
		GameID:       "feeding",
		Duration:     time.Second,
		Preview:      0,
		HandoffDelay: time.Second,
		NextStage:    "ranking",
	})
	require.NoError(t, s.Start(t0, "ana"))
	s.AddScore(3)

	id := world.Add(Entity{X: 50, Y: 0, Size: 40, Motion: Fall})
	_, ok := world.Resolve(id, t0)
	require.True(t, ok)
	world.Add(Entity{X: 20, Y: 0, Size: 40, Motion: Fall})

	s.Advance(t0.Add(time.Second))
	require.Equal(t, core.PhaseOver, s.Phase())

	s.Reset()
	assert.Equal(t, core.PhaseIdle, s.Phase())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, world.Len())
	assert.Equal(t, 0, world.Ledger().Len())
	assert.Equal(t, 0, s.Scheduler().Len())
	assert.False(t, s.Reported())
	assert.Empty(t, s.Player())

	// The handoff of the finished round never fires.
	s.Advance(t0.Add(time.Hour))
	assert.Empty(t, nav.stages)
	assert.Equal(t, 1, scores.records)

	// A new round works normally.
	require.NoError(t, s.Start(t0.Add(2*time.Hour), "bo"))
	assert.Equal(t, core.PhaseActive, s.Phase())
	assert.Equal(t, time.Second, s.Countdown().Remaining(t0.Add(2*time.Hour)))
}

func TestSessionStaleEventIsNoOp(t *testing.T) {
	s, _, _, _ := newTestSession(SessionConfig{
		GameID:   "memory",
		Duration: time.Second,
		Preview:  time.Second,
	})
	require.NoError(t, s.Start(t0, "ana"))

	// An event captured before the reset and re-queued by hand must not
	// activate the new round.
	stale := s.guard(s.activate)
	s.Reset()
	s.Scheduler().At(t0, stale)
	s.Advance(t0.Add(time.Minute))
	assert.Equal(t, core.PhaseIdle, s.Phase())
}

func TestSessionWithoutCollaborators(t *testing.T) {
	s := NewSession(SessionConfig{GameID: "solo", Duration: time.Second, NextStage: "x"}, SessionDeps{})
	require.NoError(t, s.Start(t0, "ana"))
	s.AddScore(2)
	s.Advance(t0.Add(time.Second))
	assert.Equal(t, core.PhaseOver, s.Phase())
	assert.True(t, s.Reported())
	assert.False(t, s.HandoffPending())
}

// A whole feeding-style round: spawner, falling food, stationary actor.
func TestRoundSpawnerStopsWhenSessionEnds(t *testing.T) {
	s, scores, _, world := newTestSession(SessionConfig{GameID: "feeding", Duration: 5 * time.Second})
	world.SetFall(FallProfile{MinSpeed: 3, MaxSpeed: 6})

	gen := &FixedGenerator{Positions: []float64{50}}
	spawner := NewSpawner(time.Second, s.Scheduler(), world, gen, func(now time.Time, g Generator) Entity {
		return Entity{X: g.NextPosition(), Y: -40, Size: 40, Kind: food, Motion: Fall}
	})
	s.OnActive(spawner.Start)
	s.OnOver(func(time.Time) { spawner.Stop() })

	actor := Actor{X: 50, Width: 60, Height: 70, Speed: 5}
	in := core.NewInputFrame()
	now := t0
	frames := NewFrameClock(60)
	frames.Reset(t0)

	assert.Equal(t, 0, spawner.Count(), "nothing spawns while Idle")
	require.NoError(t, s.Start(t0, "ana"))

	for i := 0; i < 60*8; i++ {
		now = now.Add(frame)
		_, n := frames.Advance(now)
		s.Advance(now)
		if !s.Active() {
			world.Step(now, n, nil)
			continue
		}
		actor.Move(in, n)
		target := actor.Box(world.Area())
		rep := world.Step(now, n, &target)
		for range rep.Collisions {
			s.AddScore(1)
		}
	}

	assert.Equal(t, core.PhaseOver, s.Phase())
	assert.False(t, spawner.Running())
	assert.Equal(t, 4, spawner.Count(), "one spawn per second; the tick due at the end is dropped")
	assert.Equal(t, s.Score(), scores.games["feeding"])
	assert.Positive(t, s.Score())
}

func TestSpawnerStartStopIdempotent(t *testing.T) {
	sched := NewScheduler()
	world := NewWorld(testArea, nil)
	sp := NewSpawner(500*time.Millisecond, sched, world, &FixedGenerator{}, func(time.Time, Generator) Entity {
		return Entity{Size: 50, Motion: Rise, Speed: 4}
	})
	var spawned []EntityID
	sp.OnSpawn(func(e Entity) { spawned = append(spawned, e.ID) })

	sp.Start(t0)
	sp.Start(t0)
	assert.Equal(t, 1, sched.Len())

	sched.Drain(t0.Add(500 * time.Millisecond))
	sched.Drain(t0.Add(time.Second))
	assert.Equal(t, 2, world.Len())
	assert.Equal(t, []EntityID{1, 2}, spawned)

	sp.Stop()
	sp.Stop()
	assert.False(t, sp.Running())
	sched.Drain(t0.Add(10 * time.Second))
	assert.Equal(t, 2, sp.Count())
	assert.Equal(t, 2, world.Len(), "live entities survive Stop")
}

func TestGenerators(t *testing.T) {
	catalog := []Kind{{Name: "a", Weight: 1}, {Name: "b", Weight: 0}, {Name: "c", Weight: 3}}

	g := NewRandomGenerator(42)
	seen := make(map[int]int)
	for i := 0; i < 1000; i++ {
		k := g.NextKind(catalog)
		require.GreaterOrEqual(t, k, 0)
		require.Less(t, k, len(catalog))
		seen[k]++

		p := g.NextPosition()
		require.GreaterOrEqual(t, p, MinSpawnPercent)
		require.Less(t, p, MaxSpawnPercent)

		v := g.NextFloat(4, 8)
		require.GreaterOrEqual(t, v, 4.0)
		require.Less(t, v, 8.0)
	}
	assert.Greater(t, seen[2], seen[0], "heavier kind is drawn more often")
	assert.Equal(t, -1, g.NextKind(nil))

	same := NewRandomGenerator(42)
	again := NewRandomGenerator(42)
	assert.Equal(t, same.NextPosition(), again.NextPosition(), "seeded generators agree")

	f := &FixedGenerator{Kinds: []int{2, 0}, Positions: []float64{15, 85}, Values: []float64{100}}
	assert.Equal(t, 2, f.NextKind(catalog))
	assert.Equal(t, 0, f.NextKind(catalog))
	assert.Equal(t, 2, f.NextKind(catalog))
	assert.Equal(t, 15.0, f.NextPosition())
	assert.Equal(t, 85.0, f.NextPosition())
	assert.Equal(t, 8.0, f.NextFloat(4, 8), "clamped to max")

	order := []int{1, 2, 3}
	f.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	assert.Equal(t, []int{1, 2, 3}, order)
}
