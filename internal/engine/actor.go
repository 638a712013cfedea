package engine

import "github.com/vovakirdan/tui-party/internal/core"

// Actor limits keep the actor's center inside the central 80%.
const (
	MinActorPercent = 10.0
	MaxActorPercent = 90.0
)

// Actor is the player-controlled hitbox standing on the bottom edge.
// X is its horizontal center in percent; Width and Height are pixels.
type Actor struct {
	X      float64
	Width  float64
	Height float64
	Speed  float64 // Percent of play width per frame while a direction is held
}

// Move shifts the actor by the held directions over frames nominal frames
// and clamps it to [MinActorPercent, MaxActorPercent]. Holding both
// directions cancels out.
func (a *Actor) Move(in core.InputFrame, frames float64) {
	dir := 0.0
	if in.IsHeld(core.ActionLeft) {
		dir--
	}
	if in.IsHeld(core.ActionRight) {
		dir++
	}
	a.X = core.ClampF(a.X+dir*a.Speed*frames, MinActorPercent, MaxActorPercent)
}

// Box returns the actor's hitbox in pixels, bottom-aligned in area.
func (a Actor) Box(area PlayArea) core.Box {
	left := area.PercentToPx(a.X) - a.Width/2
	return core.BoxAt(left, area.Height-a.Height, a.Width, a.Height)
}
