package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-party/internal/platform/tui"
	"github.com/vovakirdan/tui-party/internal/ranking"
	"github.com/vovakirdan/tui-party/internal/registry"
)

var flagName string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the party",
	Long: `Start the party: enter your name, play every game in order, and see
your total on the ranking.

Controls:
  Arrows/WASD  - Move, aim, pick a card
  Enter/Space  - Start a round, confirm
  Mouse        - Click a card or a balloon
  M            - Toggle music
  Q/Ctrl+C     - Quit

Examples:
  party play
  party play --name ana
  party play --config ./short-party.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var gameCmd = &cobra.Command{
	Use:   "game <id>",
	Short: "Practice a single game",
	Long: `Play one game on its own. The score goes to the game's history but
not to the party ranking.

Controls:
  R            - Play again after the round
  Esc          - Leave the game

Examples:
  party game memory
  party game feeding --name ana`,
	Args: cobra.ExactArgs(1),
	RunE: runGame,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (prefills the welcome screen)")
	gameCmd.Flags().StringVar(&flagName, "name", "", "Player name (default: remembered name or $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.close()

	return a.runParty()
}

func runGame(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'party list' to see available games", gameID)
	}

	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.close()

	_, err = a.practice(gameID)
	return err
}

// runParty runs one party in the terminal.
func (a *app) runParty() error {
	a.scores.Reset()
	opts := tui.PartyOptions{
		Runtime:      a.runtime,
		Party:        a.party,
		Scores:       a.scores,
		History:      a.history(),
		Audio:        a.audio,
		Logger:       a.logger,
		Name:         flagName,
		RememberName: true,
	}
	if a.store != nil {
		opts.Store = a.store
	}
	if err := tui.RunParty(opts); err != nil {
		return fmt.Errorf("error running party: %w", err)
	}
	return nil
}

// practice runs a single game. The tally is kept away from the ranking:
// a practice round never commits to it.
func (a *app) practice(gameID string) (back bool, err error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return false, fmt.Errorf("error creating game: %w", err)
	}

	scores := ranking.NewAggregator(ranking.NewMemoryStore(), a.logger)
	if a.store != nil {
		scores.SetHistory(a.store)
	}

	runtime := a.runtime
	runtime.PlayerName = a.playerName()
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	env := registry.Env{
		Runtime: runtime,
		Party:   a.party,
		Scores:  scores,
		Logger:  a.logger.With("game", gameID),
	}
	a.logger.Info("practice started", "game", gameID, "player", runtime.PlayerName)

	back, err = tui.RunGame(game, env, a.audio)
	if err != nil {
		return back, fmt.Errorf("error running game: %w", err)
	}
	return back, nil
}

// playerName picks the practice name: --name, the remembered name, $USER.
func (a *app) playerName() string {
	if flagName != "" {
		return flagName
	}
	if a.store != nil {
		if saved := ranking.LoadPlayerName(a.store); saved != "" {
			return saved
		}
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "player"
}
