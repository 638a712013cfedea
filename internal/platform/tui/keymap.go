package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-party/internal/core"
)

// HoldWindow is how long a direction stays held after its last key event.
// Terminals report presses and auto-repeats but never releases.
const HoldWindow = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	case "m":
		return core.ActionMute, false
	}
	return core.ActionNone, false
}

// isDirection reports whether an action can be held.
func isDirection(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		return true
	}
	return false
}

// HeldKeys approximates held directions from key events: a direction is
// held until HoldWindow after its most recent press or auto-repeat.
// Pressing the opposite direction releases the first one.
type HeldKeys struct {
	until map[core.Action]time.Time
}

// NewHeldKeys creates an empty tracker.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{until: make(map[core.Action]time.Time)}
}

// Press records a key event for a direction at now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if !isDirection(a) {
		return
	}
	delete(h.until, opposite(a))
	h.until[a] = now.Add(HoldWindow)
}

// Apply marks every direction still held at now in the frame and forgets
// the ones whose window ended.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, until := range h.until {
		if now.Before(until) {
			frame.Hold(a, true)
			continue
		}
		delete(h.until, a)
	}
}

// Release forgets every held direction.
func (h *HeldKeys) Release() {
	clear(h.until)
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	}
	return core.ActionNone
}

// MapMouse converts a left-button press into a pointer hit in play-area
// pixels. Clicks on the HUD rows or outside the grid are dropped.
func MapMouse(msg tea.MouseMsg, view core.Viewport, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	px, py, ok := view.ToPixel(msg.X, msg.Y)
	if !ok {
		return false
	}
	frame.AddHit(px, py)
	return true
}
