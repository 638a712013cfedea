// Package tui hosts the party in a Bubble Tea program: the frame loop,
// keyboard and mouse mapping, the welcome and ranking screens, and the
// SSH server that gives every connection its own party.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per display frame with the frame's wall-clock time.
type FrameMsg time.Time

// frameCmd schedules the next frame at the given rate.
func frameCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 60
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
