package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-party/internal/audio"
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/registry"
)

// footerRows is the number of rows below the game screen (the time bar).
const footerRows = 1

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// GameModel is the Bubble Tea model that hosts one game.
// Standalone models drive their own frame loop and support restart;
// inside a party the PartyModel owns the loop.
type GameModel struct {
	game       registry.Game
	env        registry.Env
	screen     *core.Screen
	keys       *KeyMapper
	held       *HeldKeys
	frame      core.InputFrame
	audio      *audio.Player
	bar        progress.Model
	state      core.GameState
	standalone bool
	quitting   bool
	back       bool
}

// NewGameModel creates a model for game. player may be nil.
func NewGameModel(game registry.Game, env registry.Env, player *audio.Player) GameModel {
	w, h := env.Runtime.ScreenW, env.Runtime.ScreenH
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = max(10, w-24)
	env.Runtime.ScreenH = max(1, h-footerRows)

	return GameModel{
		game:   game,
		env:    env,
		screen: core.NewScreen(w, env.Runtime.ScreenH),
		keys:   NewKeyMapper(),
		held:   NewHeldKeys(),
		frame:  core.NewInputFrame(),
		audio:  player,
		bar:    bar,
	}
}

// Standalone makes the model own its frame loop and allows restarting a
// finished round with R.
func (m GameModel) Standalone() GameModel {
	m.standalone = true
	return m
}

// Init resets the game and, when standalone, starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.env)
	if m.standalone {
		return frameCmd(m.env.Runtime.TickRate)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.MouseMsg:
		MapMouse(msg, m.viewport(), &m.frame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionMute:
		m.audio.Toggle()
		return m, nil
	case core.ActionRestart:
		if m.standalone && m.state.GameOver {
			m.game.Reset(m.env)
			m.state = m.game.State()
			m.held.Release()
		}
		return m, nil
	case core.ActionBack:
		if m.standalone {
			m.back = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.held.Press(action, now)
	m.frame.Set(action)
	return m, nil
}

// handleResize keeps the round running; only the cell mapping changes.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	rows := max(1, msg.Height-footerRows)
	m.env.Runtime.ScreenW = msg.Width
	m.env.Runtime.ScreenH = rows
	m.screen.Resize(msg.Width, rows)
	m.game.Resize(msg.Width, rows)
	m.bar.Width = max(10, msg.Width-24)
	return m, nil
}

// handleFrame steps the simulation to now.
func (m GameModel) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	clear(m.frame.Held)
	m.held.Apply(&m.frame, now)

	result := m.game.Step(now, m.frame)
	m.state = result.State
	for _, ev := range result.Events {
		m.audio.Blip(ev.Kind)
	}

	m.frame.Clear()
	if m.standalone {
		return m, frameCmd(m.env.Runtime.TickRate)
	}
	return m, nil
}

func (m GameModel) viewport() core.Viewport {
	area := m.env.Area()
	return core.NewViewport(area.Width, area.Height, m.screen.Width(), m.screen.Height(), core.HUDRows)
}

// View renders the game screen and the time bar under it.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m GameModel) footer() string {
	frac := 0.0
	if m.state.Duration > 0 {
		frac = float64(m.state.Remaining) / float64(m.state.Duration)
	}
	music := "♪ off"
	if !m.audio.Muted() {
		music = "♪ on "
	}
	left := footerStyle.Render(fmt.Sprintf(" %-10s ", m.state.Phase))
	hint := ""
	if m.standalone && m.state.GameOver {
		hint = "  r again · esc back"
	}
	return left + m.bar.ViewAs(frac) + footerStyle.Render(" "+music+hint)
}

// Game returns the hosted game.
func (m GameModel) Game() registry.Game {
	return m.game
}

// State returns the state after the latest frame.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if the user asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackRequested returns true if the user left a standalone game with Esc.
func (m GameModel) BackRequested() bool {
	return m.back
}

// RunGame runs a single game in its own program. back reports whether the
// player left with Esc rather than quitting.
func RunGame(game registry.Game, env registry.Env, player *audio.Player) (back bool, err error) {
	model := NewGameModel(game, env, player).Standalone()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	game.Close()
	if m, ok := finalModel.(GameModel); ok {
		back = m.BackRequested()
	}
	return back, err
}
