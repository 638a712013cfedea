package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-party/internal/registry"
)

// maxNameLen bounds the player name to what fits in the ranking table.
const maxNameLen = 20

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)
	stageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// WelcomeModel asks for the player name before the first game.
type WelcomeModel struct {
	input    textinput.Model
	stages   []string
	width    int
	height   int
	name     string
	errMsg   string
	done     bool
	quitting bool
}

// NewWelcomeModel creates the name entry screen prefilled with name.
func NewWelcomeModel(name string, stages []string, width, height int) WelcomeModel {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = maxNameLen
	ti.Width = maxNameLen + 1
	ti.Prompt = "> "
	ti.SetValue(name)
	ti.Focus()

	return WelcomeModel{
		input:  ti,
		stages: stages,
		width:  width,
		height: height,
	}
}

// Init starts the cursor blink.
func (m WelcomeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the welcome screen.
func (m WelcomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.errMsg = "Please enter a name to play."
				return m, nil
			}
			m.name = name
			m.done = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if strings.TrimSpace(m.input.Value()) != "" {
		m.errMsg = ""
	}
	return m, cmd
}

// View renders the welcome screen.
func (m WelcomeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(bannerStyle.Render("TUI PARTY"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Play %d quick games in a row. Your scores add up on the ranking!\n\n", len(m.stages))
	for i, id := range m.stages {
		b.WriteString(stageStyle.Render(fmt.Sprintf("  %d. %s", i+1, registry.Title(id))))
		b.WriteString("\n")
	}
	b.WriteString("\nWhat's your name?\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter start · esc quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Done reports whether a valid name was submitted.
func (m WelcomeModel) Done() bool {
	return m.done
}

// Name returns the submitted name, trimmed.
func (m WelcomeModel) Name() string {
	return m.name
}

// IsQuitting returns true if the user left the welcome screen.
func (m WelcomeModel) IsQuitting() bool {
	return m.quitting
}
