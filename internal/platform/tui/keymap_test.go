package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-party/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")}, core.ActionMute, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestHeldKeysWindow(t *testing.T) {
	t0 := time.Unix(1000, 0)
	h := NewHeldKeys()
	h.Press(core.ActionLeft, t0)

	frame := core.NewInputFrame()
	h.Apply(&frame, t0.Add(100*time.Millisecond))
	if !frame.IsHeld(core.ActionLeft) {
		t.Fatal("left should be held inside the window")
	}

	// Auto-repeat extends the window.
	h.Press(core.ActionLeft, t0.Add(120*time.Millisecond))
	frame = core.NewInputFrame()
	h.Apply(&frame, t0.Add(200*time.Millisecond))
	if !frame.IsHeld(core.ActionLeft) {
		t.Error("repeat should extend the hold")
	}

	frame = core.NewInputFrame()
	h.Apply(&frame, t0.Add(120*time.Millisecond+HoldWindow))
	if frame.IsHeld(core.ActionLeft) {
		t.Error("left should be released after the window")
	}
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	t0 := time.Unix(1000, 0)
	h := NewHeldKeys()
	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionRight, t0.Add(10*time.Millisecond))
	h.Press(core.ActionConfirm, t0)

	frame := core.NewInputFrame()
	h.Apply(&frame, t0.Add(20*time.Millisecond))
	if frame.IsHeld(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !frame.IsHeld(core.ActionRight) {
		t.Error("right should be held")
	}
	if frame.IsHeld(core.ActionConfirm) {
		t.Error("confirm is not a direction")
	}

	h.Release()
	frame = core.NewInputFrame()
	h.Apply(&frame, t0.Add(20*time.Millisecond))
	if len(frame.Held) != 0 {
		t.Errorf("Release should forget everything, got %v", frame.Held)
	}
}

func TestMapMouse(t *testing.T) {
	// 80x26 cells over 800x480 px: 10 px wide, 20 px high, play area from row 2.
	view := core.NewViewport(800, 480, 80, 26, core.HUDRows)

	tests := []struct {
		name string
		msg  tea.MouseMsg
		ok   bool
		x, y float64
	}{
		{"press", tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true, 55, 30},
		{"hud", tea.MouseMsg{X: 5, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, false, 0, 0},
		{"release", tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, false, 0, 0},
		{"right button", tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			ok := MapMouse(tt.msg, view, &frame)
			if ok != tt.ok {
				t.Fatalf("MapMouse ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				if len(frame.Hits) != 0 {
					t.Errorf("dropped click left hits %v", frame.Hits)
				}
				return
			}
			if len(frame.Hits) != 1 || frame.Hits[0] != (core.Hit{X: tt.x, Y: tt.y}) {
				t.Errorf("hits = %v, want (%v, %v)", frame.Hits, tt.x, tt.y)
			}
		})
	}
}
