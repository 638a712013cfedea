package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move actor / cursor left
	ActionRight          // D, Right arrow - move actor / cursor right
	ActionUp             // W, Up arrow - move cursor up
	ActionDown           // S, Down arrow - move cursor down
	ActionConfirm        // Enter, Space - start round / flip card
	ActionBack           // B, Escape - leave the current screen
	ActionRestart        // R key - play again
	ActionQuit           // Q, Ctrl+C - exit session
	ActionMute           // M key - toggle music
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}

// Hit is a pointer-down event in play-area pixels.
type Hit struct {
	X, Y float64
}

// InputFrame represents the input state for one simulation frame.
//
// Actions holds discrete presses that happened since the previous frame.
// Held holds directions that are currently held down; the platform decides
// how a press maps to "held" for its input device.
// Hits holds pointer-down events in arrival order.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
	Hits    []Hit
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Hold marks a direction as held (or released when held is false).
func (f *InputFrame) Hold(a Action, held bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if held {
		f.Held[a] = true
		return
	}
	delete(f.Held, a)
}

// IsHeld returns true if the direction is currently held.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// AddHit records a pointer-down event.
func (f *InputFrame) AddHit(x, y float64) {
	f.Hits = append(f.Hits, Hit{X: x, Y: y})
}

// Clear resets the per-frame actions and hits. Held directions persist.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Hits = f.Hits[:0]
}
