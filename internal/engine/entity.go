package engine

import (
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
)

// EntityID identifies an entity within one World. IDs increase with
// creation order and are never reused.
type EntityID uint64

// Lifecycle is the state of a live entity.
type Lifecycle int

const (
	// Active entities move and can collide.
	Active Lifecycle = iota
	// Resolved entities were scored and are fading out; they never move or
	// collide again and are removed once the fade window has passed.
	Resolved
	// Expired entities left the play area unscored. They are removed on the
	// same frame and only ever appear in Step results.
	Expired
)

// String returns a human-readable name for the lifecycle state.
func (l Lifecycle) String() string {
	switch l {
	case Active:
		return "Active"
	case Resolved:
		return "Resolved"
	case Expired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// Polarity is the scoring effect of catching an entity.
type Polarity int

const (
	Neutral Polarity = iota
	Beneficial
	Penalizing
)

// Kind is an entry of a spawn catalog.
type Kind struct {
	Name     string
	Glyph    rune
	Color    core.Color
	Polarity Polarity
	Weight   int // Relative spawn weight; 0 counts as 1
}

// Motion describes how an entity moves each frame.
type Motion int

const (
	// Static entities never move.
	Static Motion = iota
	// Fall entities move down, accelerating linearly with depth up to a cap.
	Fall
	// Rise entities move up at their fixed spawn speed.
	Rise
)

// Entity is a transient simulated object.
//
// X is the horizontal center as a percentage of the play-area width; Y is
// the top edge in pixels. Size is both the rendered extent and the hitbox
// extent in pixels.
type Entity struct {
	ID         EntityID
	X          float64
	Y          float64
	Size       float64
	Kind       Kind
	Speed      float64 // Pixels per frame; recomputed each frame for Fall
	Motion     Motion
	State      Lifecycle
	CreatedAt  time.Time
	ResolvedAt time.Time
}

// Box returns the entity's hitbox in pixels for the given area.
func (e Entity) Box(area PlayArea) core.Box {
	left := area.PercentToPx(e.X) - e.Size/2
	return core.BoxAt(left, e.Y, e.Size, e.Size)
}

// PlayArea is the cached size of the play field in pixels.
// It changes only on resize, never per frame.
type PlayArea struct {
	Width, Height float64
}

// PercentToPx converts a horizontal percentage to pixels.
func (a PlayArea) PercentToPx(p float64) float64 {
	return p * a.Width / 100
}

// PxToPercent converts a horizontal pixel position to a percentage.
func (a PlayArea) PxToPercent(px float64) float64 {
	if a.Width == 0 {
		return 0
	}
	return px * 100 / a.Width
}

// Valid reports whether the area has a usable size.
func (a PlayArea) Valid() bool {
	return a.Width > 0 && a.Height > 0
}
