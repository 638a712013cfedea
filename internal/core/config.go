package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Frames per second requested from the host (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	PlayerName string // Name the round is played under; empty blocks the start action
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Phase is the session state of a single game round.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreviewing
	PhaseActive
	PhaseOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePreviewing:
		return "Previewing"
	case PhaseActive:
		return "Active"
	case PhaseOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase     Phase         // Current session phase
	Score     int           // Current score, never negative
	Remaining time.Duration // Countdown time left
	Duration  time.Duration // Full countdown length
	GameOver  bool          // Whether the round has ended
}

// EventKind identifies something that happened during a frame.
type EventKind int

const (
	EventScored EventKind = iota // Score went up
	EventPenalty                 // A penalizing entity was caught
	EventExpired                 // An entity left the play area unscored
	EventOver                    // The round ended
)

// Event is emitted by a game during Step for the platform (sound, effects).
type Event struct {
	Kind  EventKind
	Delta int
}

// StepResult is returned by Game.Step() after each frame.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
