// Package registry provides a global registry for mini-game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/engine"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Env is everything a game needs from its host for one round.
type Env struct {
	Runtime   core.RuntimeConfig
	Party     config.PartyConfig
	Scores    engine.ScoreAggregator // May be nil
	Navigator engine.Navigator       // May be nil
	NextStage string                 // Stage to hand off to after Over
	Generator engine.Generator       // Nil means a RandomGenerator seeded from Runtime.Seed
	Logger    *log.Logger
}

// GeneratorOrSeeded returns the injected generator or a seeded random one.
func (e Env) GeneratorOrSeeded() engine.Generator {
	if e.Generator != nil {
		return e.Generator
	}
	seed := e.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return engine.NewRandomGenerator(seed)
}

// LoggerOrDiscard returns the injected logger or one that drops everything.
func (e Env) LoggerOrDiscard() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.New(io.Discard)
}

// Area returns the configured play area.
func (e Env) Area() engine.PlayArea {
	return engine.PlayArea{Width: e.Party.Area.Width, Height: e.Party.Area.Height}
}

// Game is the interface every mini-game implements.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing, and rendering. All methods are called from
// a single goroutine.
type Game interface {
	// ID returns a unique identifier (e.g. "memory"). Used for CLI commands,
	// stage names, and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Rules returns the short rule lines shown on the Idle screen.
	Rules() []string

	// Reset tears down any running round and returns the game to Idle
	// with the given environment.
	Reset(env Env)

	// Start is the explicit start action. It fails without a player name
	// or outside Idle.
	Start(now time.Time) error

	// Step advances the round to now. Motion covers the true elapsed time
	// since the previous Step.
	Step(now time.Time, in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the latest session snapshot.
	State() core.GameState

	// Entities returns the live entity set for presentation.
	Entities() []engine.Entity

	// Resize updates the cached play-area geometry.
	Resize(cols, rows int)

	// Close cancels everything the game scheduled.
	Close()
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the registered title of a game, or the ID if unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := titles[id]; ok {
		return t
	}
	return id
}
