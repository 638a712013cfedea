package engine

import "time"

// SpawnFunc builds a new entity at now. The world assigns its ID.
type SpawnFunc func(now time.Time, gen Generator) Entity

// Spawner periodically adds entities to a world through the scheduler.
//
// Start and Stop are idempotent. The spawner never decides on its own
// whether spawning is allowed; the session starts it on entering Active and
// stops it on leaving, and the scheduler tick is cancelled with it.
type Spawner struct {
	period time.Duration
	sched  *Scheduler
	world  *World
	gen    Generator
	build  SpawnFunc
	tick   EventID
	onNew  func(Entity)
	count  int
}

// NewSpawner creates a stopped spawner.
func NewSpawner(period time.Duration, sched *Scheduler, world *World, gen Generator, build SpawnFunc) *Spawner {
	return &Spawner{
		period: period,
		sched:  sched,
		world:  world,
		gen:    gen,
		build:  build,
	}
}

// OnSpawn registers a callback run after each entity is added.
func (s *Spawner) OnSpawn(fn func(Entity)) {
	s.onNew = fn
}

// Period returns the spawn interval.
func (s *Spawner) Period() time.Duration {
	return s.period
}

// Running reports whether the periodic tick is scheduled.
func (s *Spawner) Running() bool {
	return s.tick != 0 && s.sched.Pending(s.tick)
}

// Start schedules a spawn every period, the first one period after now.
func (s *Spawner) Start(now time.Time) {
	if s.Running() {
		return
	}
	s.tick = s.sched.Every(now, s.period, s.spawn)
}

// Stop cancels the periodic tick. Live entities are untouched.
func (s *Spawner) Stop() {
	if s.tick == 0 {
		return
	}
	s.sched.Cancel(s.tick)
	s.tick = 0
}

// Count returns how many entities this spawner created.
func (s *Spawner) Count() int {
	return s.count
}

// SpawnNow creates one entity immediately.
func (s *Spawner) SpawnNow(now time.Time) Entity {
	e := s.build(now, s.gen)
	e.CreatedAt = now
	e.ID = s.world.Add(e)
	e.State = Active
	s.count++
	if s.onNew != nil {
		s.onNew(e)
	}
	return e
}

func (s *Spawner) spawn(now time.Time) {
	s.SpawnNow(now)
}
