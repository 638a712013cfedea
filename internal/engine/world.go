package engine

import (
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
)

// FallProfile is the speed model for Fall entities: MinSpeed while above
// the play area, then growing linearly with depth until MaxSpeed at the
// bottom edge.
type FallProfile struct {
	MinSpeed float64
	MaxSpeed float64
}

// SpeedAt returns the fall speed in pixels per frame at top edge y.
func (p FallProfile) SpeedAt(y, height float64) float64 {
	if y < 0 || height <= 0 {
		return p.MinSpeed
	}
	s := p.MinSpeed + (y/height)*(p.MaxSpeed-p.MinSpeed)
	return min(p.MaxSpeed, s)
}

// StepReport lists what happened to the live set during one Step.
type StepReport struct {
	Collisions []Entity // Entities that became Resolved this frame
	Expired    []Entity // Entities that left the play area unscored
	Removed    int      // Resolved entities whose fade window ended
}

// World is the live entity set together with its motion and collision rules.
// Only the session's frame loop mutates it.
type World struct {
	area     PlayArea
	fall     FallProfile
	ledger   *Ledger
	entities []Entity
	nextID   EntityID
}

// NewWorld creates an empty world for the given play area.
func NewWorld(area PlayArea, ledger *Ledger) *World {
	if ledger == nil {
		ledger = NewLedger(DefaultFadeWindow)
	}
	return &World{
		area:     area,
		ledger:   ledger,
		entities: make([]Entity, 0, 32),
	}
}

// SetFall sets the speed model for Fall entities.
func (w *World) SetFall(p FallProfile) {
	w.fall = p
}

// Fall returns the speed model for Fall entities.
func (w *World) Fall() FallProfile {
	return w.fall
}

// Area returns the cached play-area size.
func (w *World) Area() PlayArea {
	return w.area
}

// Resize replaces the cached play-area size. Horizontal positions are
// percentages and survive a resize unchanged.
func (w *World) Resize(area PlayArea) {
	w.area = area
}

// Ledger returns the world's collision debounce ledger.
func (w *World) Ledger() *Ledger {
	return w.ledger
}

// NextID reserves a fresh entity ID.
func (w *World) NextID() EntityID {
	w.nextID++
	return w.nextID
}

// Add inserts an entity into the live set as Active. A zero ID is replaced
// with a fresh one. Returns the entity's ID.
func (w *World) Add(e Entity) EntityID {
	if e.ID == 0 {
		e.ID = w.NextID()
	} else if e.ID > w.nextID {
		w.nextID = e.ID
	}
	e.State = Active
	e.ResolvedAt = time.Time{}
	w.entities = append(w.entities, e)
	return e.ID
}

// Step advances every Active entity by frames nominal frames, tests it
// against target (nil for pointer-driven games), resolves first-time
// collisions through the ledger, expires entities that left the play area,
// and sweeps resolved entities whose fade window ended.
func (w *World) Step(now time.Time, frames float64, target *core.Box) StepReport {
	var report StepReport
	kept := w.entities[:0]

	for _, e := range w.entities {
		if e.State != Active {
			kept = append(kept, e)
			continue
		}

		switch e.Motion {
		case Fall:
			e.Speed = w.fall.SpeedAt(e.Y, w.area.Height)
			e.Y += e.Speed * frames
		case Rise:
			e.Y -= e.Speed * frames
		}

		if target != nil && e.Box(w.area).Overlaps(*target) && w.ledger.Accept(e.ID, now) {
			e.State = Resolved
			e.ResolvedAt = now
			report.Collisions = append(report.Collisions, e)
			kept = append(kept, e)
			continue
		}

		if w.outside(e) {
			e.State = Expired
			report.Expired = append(report.Expired, e)
			continue
		}
		kept = append(kept, e)
	}
	w.entities = kept

	report.Removed = w.Sweep(now)
	return report
}

// outside reports whether an entity has fully left the play area in its
// direction of travel.
func (w *World) outside(e Entity) bool {
	switch e.Motion {
	case Fall:
		return e.Y >= w.area.Height+e.Size
	case Rise:
		return e.Y+e.Size <= 0
	}
	return false
}

// HitTest resolves the topmost entity under the pointer at (x, y) pixels.
// A hit on an entity that is already resolved, or whose ID is still in the
// ledger, is absorbed and returns false; it does not fall through to
// entities underneath.
func (w *World) HitTest(now time.Time, x, y float64) (Entity, bool) {
	for i := len(w.entities) - 1; i >= 0; i-- {
		e := &w.entities[i]
		if !e.Box(w.area).Contains(x, y) {
			continue
		}
		if e.State != Active || !w.ledger.Accept(e.ID, now) {
			return *e, false
		}
		e.State = Resolved
		e.ResolvedAt = now
		return *e, true
	}
	return Entity{}, false
}

// Resolve marks an Active entity as Resolved if the ledger accepts it.
func (w *World) Resolve(id EntityID, now time.Time) (Entity, bool) {
	for i := range w.entities {
		e := &w.entities[i]
		if e.ID != id {
			continue
		}
		if e.State != Active || !w.ledger.Accept(id, now) {
			return *e, false
		}
		e.State = Resolved
		e.ResolvedAt = now
		return *e, true
	}
	return Entity{}, false
}

// Sweep removes resolved entities whose fade window has elapsed and drops
// expired ledger claims. Returns the number of entities removed.
func (w *World) Sweep(now time.Time) int {
	fade := w.ledger.Window()
	removed := 0
	kept := w.entities[:0]
	for _, e := range w.entities {
		if e.State == Resolved && now.Sub(e.ResolvedAt) >= fade {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	w.entities = kept
	w.ledger.Expire(now)
	return removed
}

// Entities returns a copy of the live set in insertion order.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

// Get returns the live entity with the given ID.
func (w *World) Get(id EntityID) (Entity, bool) {
	for _, e := range w.entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Clear removes every entity and ledger claim. IDs keep increasing.
func (w *World) Clear() {
	w.entities = w.entities[:0]
	w.ledger.Clear()
}
