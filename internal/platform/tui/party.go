package tui

import (
	"io"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/audio"
	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/engine"
	"github.com/vovakirdan/tui-party/internal/ranking"
	"github.com/vovakirdan/tui-party/internal/registry"
)

// Stages outside the game list.
const (
	StageWelcome = "welcome"
	StageRanking = "ranking"
)

// PartyOptions configures one party.
type PartyOptions struct {
	Runtime core.RuntimeConfig
	Party   config.PartyConfig
	Store   ranking.Persistence
	Scores  *ranking.Aggregator
	History ScoreHistory // May be nil
	Audio   *audio.Player
	Logger  *log.Logger

	// Name prefills the welcome screen. When RememberName is set the
	// submitted name is saved to Store and restored next time.
	Name         string
	RememberName bool
}

// StageRouter is the party's engine.Navigator. Games request the next
// stage from inside Step; the party applies the request after the frame.
type StageRouter struct {
	pending string
}

// GoToStage records a stage change.
func (r *StageRouter) GoToStage(stage string) {
	r.pending = stage
}

// take returns and clears the pending request.
func (r *StageRouter) take() (string, bool) {
	s := r.pending
	r.pending = ""
	return s, s != ""
}

var _ engine.Navigator = (*StageRouter)(nil)

// PartyModel runs the whole sequence: welcome, every game in order, and
// the ranking board, which can start the party over.
type PartyModel struct {
	opts    PartyOptions
	stages  []string
	router  *StageRouter
	logger  *log.Logger
	stage   string
	welcome WelcomeModel
	game    *GameModel
	board   ScoreboardModel
	width   int
	height  int

	quitting bool
}

// NewPartyModel creates a party that starts on the welcome screen.
func NewPartyModel(opts PartyOptions) PartyModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Scores == nil {
		opts.Scores = ranking.NewAggregator(opts.Store, logger)
	}

	stages := make([]string, 0, len(opts.Party.Session.Stages))
	for _, id := range opts.Party.Session.Stages {
		if !registry.Exists(id) {
			logger.Warn("skipping unknown stage", "stage", id)
			continue
		}
		stages = append(stages, id)
	}

	name := opts.Name
	if opts.RememberName && opts.Store != nil {
		if saved := ranking.LoadPlayerName(opts.Store); saved != "" {
			name = saved
		}
	}

	return PartyModel{
		opts:    opts,
		stages:  stages,
		router:  &StageRouter{},
		logger:  logger,
		stage:   StageWelcome,
		welcome: NewWelcomeModel(name, stages, opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		width:   opts.Runtime.ScreenW,
		height:  opts.Runtime.ScreenH,
	}
}

// Init starts the frame loop and the welcome screen.
func (m PartyModel) Init() tea.Cmd {
	return tea.Batch(m.welcome.Init(), frameCmd(m.opts.Runtime.TickRate))
}

// Update routes messages to the current stage.
func (m PartyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
	case FrameMsg:
		next = frameCmd(m.opts.Runtime.TickRate)
	}

	var cmd tea.Cmd
	switch m.stage {
	case StageWelcome:
		m, cmd = m.updateWelcome(msg)
	case StageRanking:
		m, cmd = m.updateBoard(msg)
	default:
		m, cmd = m.updateGame(msg)
	}
	if m.quitting {
		return m, tea.Quit
	}
	return m, tea.Batch(cmd, next)
}

func (m PartyModel) updateWelcome(msg tea.Msg) (PartyModel, tea.Cmd) {
	if _, ok := msg.(FrameMsg); ok {
		return m, nil
	}
	updated, cmd := m.welcome.Update(msg)
	m.welcome = updated.(WelcomeModel)

	if m.welcome.IsQuitting() {
		m.quitting = true
		return m, nil
	}
	if !m.welcome.Done() {
		return m, cmd
	}

	name := m.welcome.Name()
	m.opts.Runtime.PlayerName = name
	if m.opts.RememberName && m.opts.Store != nil {
		if err := ranking.SavePlayerName(m.opts.Store, name); err != nil {
			m.logger.Warn("cannot remember player name", "err", err)
		}
	}
	m.logger.Info("party started", "player", name)
	return m.startStage(m.firstStage())
}

func (m PartyModel) updateGame(msg tea.Msg) (PartyModel, tea.Cmd) {
	if m.game == nil {
		return m, nil
	}
	updated, cmd := m.game.Update(msg)
	gm := updated.(GameModel)
	m.game = &gm

	if m.game.IsQuitting() {
		m.game.Game().Close()
		m.quitting = true
		return m, nil
	}
	if stage, ok := m.router.take(); ok {
		return m.startStage(stage)
	}
	return m, cmd
}

func (m PartyModel) updateBoard(msg tea.Msg) (PartyModel, tea.Cmd) {
	if _, ok := msg.(FrameMsg); ok {
		return m, nil
	}
	updated, cmd := m.board.Update(msg)
	m.board = updated.(ScoreboardModel)

	if m.board.IsQuitting() {
		m.quitting = true
		return m, nil
	}
	if m.board.PlayAgainRequested() {
		m.opts.Scores.Reset()
		m.logger.Info("party restarted", "player", m.opts.Runtime.PlayerName)
		return m.startStage(m.firstStage())
	}
	return m, cmd
}

func (m PartyModel) firstStage() string {
	if len(m.stages) == 0 {
		return StageRanking
	}
	return m.stages[0]
}

// nextStage returns the stage that follows id.
func (m PartyModel) nextStage(id string) string {
	i := slices.Index(m.stages, id)
	if i < 0 || i+1 >= len(m.stages) {
		return StageRanking
	}
	return m.stages[i+1]
}

// startStage tears down the current game and enters stage.
func (m PartyModel) startStage(stage string) (PartyModel, tea.Cmd) {
	if m.game != nil {
		m.game.Game().Close()
		m.game = nil
	}
	m.logger.Debug("stage", "stage", stage)

	if stage == StageRanking || stage == StageWelcome {
		m.stage = StageRanking
		m.board = NewScoreboardModel(
			m.opts.Scores.Ranking(),
			m.opts.Scores.Scores(),
			m.opts.Runtime.PlayerName,
			m.stages,
			m.opts.History,
			m.width, m.height,
		)
		return m, m.board.Init()
	}

	game, err := registry.Create(stage)
	if err != nil {
		m.logger.Error("cannot start stage", "stage", stage, "err", err)
		return m.startStage(m.nextStage(stage))
	}

	env := registry.Env{
		Runtime:   m.opts.Runtime,
		Party:     m.opts.Party,
		Scores:    m.opts.Scores,
		Navigator: m.router,
		NextStage: m.nextStage(stage),
		Logger:    m.logger,
	}
	gm := NewGameModel(game, env, m.opts.Audio)
	cmd := gm.Init()
	m.game = &gm
	m.stage = stage
	return m, cmd
}

// View renders the current stage.
func (m PartyModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.stage {
	case StageWelcome:
		return m.welcome.View()
	case StageRanking:
		return m.board.View()
	}
	if m.game == nil {
		return ""
	}
	return m.game.View()
}

// Stage returns the current stage name.
func (m PartyModel) Stage() string {
	return m.stage
}

// RunParty runs a party in the local terminal.
func RunParty(opts PartyOptions) error {
	p := tea.NewProgram(
		NewPartyModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
