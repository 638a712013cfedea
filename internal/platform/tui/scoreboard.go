package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-party/internal/ranking"
	"github.com/vovakirdan/tui-party/internal/registry"
	"github.com/vovakirdan/tui-party/internal/storage"
)

// Scoreboard layout constants
const (
	historyLimit = 10 // Scores shown per game tab
	rankingTab   = 0
)

// ScoreHistory is the per-game score log shown on the game tabs.
type ScoreHistory interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the ranking board.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Again    key.Binding
	Quit     key.Binding
	showPlay bool
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	if k.showPlay {
		return []key.Binding{k.Again, k.NextTab, k.Up, k.Down, k.Quit}
	}
	return []key.Binding{k.NextTab, k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Again, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next board"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
		),
		Again: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter/r", "play again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the party ranking, the player's breakdown for the
// party just played, and one tab of history per game.
type ScoreboardModel struct {
	entries   []ranking.Entry
	scores    []ranking.GameScore
	player    string
	games     []registry.GameInfo
	history   ScoreHistory
	tab       int
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	now       time.Time
	quitting  bool
	playAgain bool
}

// NewScoreboardModel creates the board. scores is the breakdown of the
// party just played (empty when browsing); history may be nil.
func NewScoreboardModel(entries []ranking.Entry, scores []ranking.GameScore, player string,
	stages []string, history ScoreHistory, width, height int,
) ScoreboardModel {
	games := make([]registry.GameInfo, 0, len(stages))
	for _, id := range stages {
		games = append(games, registry.GameInfo{ID: id, Title: registry.Title(id)})
	}

	keys := DefaultScoreboardKeyMap()
	keys.showPlay = player != ""
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		entries: entries,
		scores:  scores,
		player:  player,
		games:   games,
		history: history,
		keys:    keys,
		help:    h,
		width:   width,
		height:  height,
		now:     time.Now(),
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// tabs returns the number of boards.
func (m *ScoreboardModel) tabs() int {
	if m.history == nil {
		return 1
	}
	return 1 + len(m.games)
}

// createTable creates a new table with columns for the current tab.
func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	if m.tab == rankingTab {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: maxNameLen},
			{Title: "Total", Width: 8},
			{Title: "When", Width: 16},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 16},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, min(historyLimit+1, m.height-14))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table for the current tab.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	cursor := 0

	if m.tab == rankingTab {
		for i, e := range m.entries {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				e.Name,
				humanize.Comma(int64(e.Total)),
				humanize.RelTime(e.CreatedAt, m.now, "ago", "from now"),
			})
			if e.Name == m.player {
				cursor = i
			}
		}
	} else {
		gameID := m.games[m.tab-1].ID
		scores, err := m.history.TopScores(gameID, historyLimit)
		if err != nil {
			scores = nil
		}
		for i, s := range scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				humanize.Comma(int64(s.Score)),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}

	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

func (m *ScoreboardModel) switchTab(delta int) {
	n := m.tabs()
	m.tab = ((m.tab+delta)%n + n) % n
	m.table = m.createTable()
	m.updateTableRows()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Again):
			if m.player != "" {
				m.playAgain = true
			}
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "PARTY RANKING"
	if m.tab != rankingTab {
		title = "BEST SCORES - " + m.games[m.tab-1].Title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.tabs() > 1 {
		b.WriteString(m.renderTabs())
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if len(m.scores) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderBreakdown())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// renderTabs renders the board selector.
func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	names := []string{"Ranking"}
	for _, g := range m.games {
		names = append(names, g.Title)
	}
	tabs := make([]string, len(names))
	for i, n := range names {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(n)
		} else {
			tabs[i] = tabStyle.Render(n)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderBreakdown renders the player's scores for the party just played.
func (m ScoreboardModel) renderBreakdown() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	parts := make([]string, 0, len(m.scores))
	total := 0
	for _, s := range m.scores {
		parts = append(parts, fmt.Sprintf("%s %d", registry.Title(s.GameID), s.Score))
		total += s.Score
	}
	line := fmt.Sprintf("%s: %s  =  %d", m.player, strings.Join(parts, " · "), total)
	if rank := m.rankOf(m.player); rank > 0 {
		line += fmt.Sprintf("  (#%d)", rank)
	}
	return labelStyle.Render(line)
}

func (m ScoreboardModel) rankOf(name string) int {
	for i, e := range m.entries {
		if e.Name == name {
			return i + 1
		}
	}
	return 0
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.tab == rankingTab {
			return emptyStyle.Render("Nobody on the board yet.\nFinish a party to claim the top spot!")
		}
		return emptyStyle.Render("No scores recorded yet.")
	}
	return m.table.View()
}

// PlayAgainRequested returns true if the user asked for another party.
func (m ScoreboardModel) PlayAgainRequested() bool {
	return m.playAgain
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the board without a party, for browsing.
func RunScoreboard(entries []ranking.Entry, stages []string, history ScoreHistory, width, height int) error {
	model := NewScoreboardModel(entries, nil, "", stages, history, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
