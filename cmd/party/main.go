// party is a terminal party of quick mini-games played in a row, with the
// scores added up on a shared ranking.
//
// Usage:
//
//	party                    - Launcher menu (party, practice, ranking)
//	party play               - Start the party right away
//	party game <id>          - Practice a single game
//	party list               - List available games
//	party ranking            - Print the party ranking
//	party scores <game>      - Show score history for a game
//	party serve              - Start SSH server for remote parties
//	party config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible rounds
//	--db <path>         - Set database path (default: ~/.party/party.db)
//	--config <path>     - Party config YAML layered over the defaults
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Log destination for interactive modes
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-party/internal/audio"
	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/platform/tui"
	"github.com/vovakirdan/tui-party/internal/ranking"
	"github.com/vovakirdan/tui-party/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/tui-party/internal/games/balloons"
	_ "github.com/vovakirdan/tui-party/internal/games/feeding"
	_ "github.com/vovakirdan/tui-party/internal/games/memory"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "party",
	Short: "TUI Party - quick mini-games in your terminal",
	Long: `TUI Party strings a few quick mini-games together. Enter your name,
play every game in order, and see your total on the ranking.

Available commands:
  play     - Start the party right away
  game     - Practice a single game
  list     - Show all available games
  ranking  - Print the party ranking
  scores   - View score history of a game
  serve    - Start SSH server for remote parties
  config   - Print the effective configuration

Running party without a command opens the launcher menu.

Examples:
  party
  party play --name ana
  party game memory
  party serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/"+config.DirName+"/party.db", "Path to the ranking database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a party config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/"+config.DirName+"/party.log)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. Interactive modes own the terminal,
// so they log to a file; the server and text commands log to stderr.
func newLogger(interactive bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if interactive {
		path := flagLogFile
		if path == "" {
			path = filepath.Join(config.HomeDir(), "party.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "party",
		Level:           level,
	})
	return logger, closer, nil
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// app is everything an interactive mode needs.
type app struct {
	logger  *log.Logger
	closer  io.Closer
	party   config.PartyConfig
	store   *storage.Store // Nil when the database cannot be opened
	scores  *ranking.Aggregator
	audio   *audio.Player
	runtime core.RuntimeConfig
}

// setup loads config, opens storage and audio. A broken database or audio
// device degrades to in-memory ranking and silence.
func setup(interactive bool) (*app, error) {
	logger, closer, err := newLogger(interactive)
	if err != nil {
		return nil, err
	}

	party, err := config.LoadParty(flagConfig)
	if err != nil {
		closer.Close()
		return nil, err
	}

	a := &app{
		logger:  logger,
		closer:  closer,
		party:   party,
		runtime: runtimeConfig(),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("ranking database unavailable, keeping ranking in memory", "err", err)
		if !interactive {
			fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		}
	} else {
		a.store = store
	}

	a.scores = a.newAggregator()

	if interactive {
		a.audio = audio.NewPlayer(party.Audio, logger)
		if err := a.audio.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		}
	}
	return a, nil
}

// newAggregator returns a fresh tally over the app's ranking store.
func (a *app) newAggregator() *ranking.Aggregator {
	var store ranking.Persistence
	if a.store != nil {
		store = a.store
	}
	scores := ranking.NewAggregator(store, a.logger)
	scores.SetSize(a.party.Session.RankingSize)
	if a.store != nil {
		scores.SetHistory(a.store)
	}
	return scores
}

// history returns the score history, or a nil interface without storage.
func (a *app) history() tui.ScoreHistory {
	if a.store == nil {
		return nil
	}
	return a.store
}

func (a *app) close() {
	a.audio.Close()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("cannot close database", "err", err)
		}
	}
	a.closer.Close()
}
