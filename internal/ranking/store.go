package ranking

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// State is everything the party persists between runs.
type State struct {
	Ranking    []Entry
	PlayerName string
}

// Persistence stores the party state. Implementations report corrupt or
// unavailable storage as an error; callers degrade to an empty State.
type Persistence interface {
	Load() (State, error)
	Save(State) error
}

// History receives every reported game score. The SQLite store implements
// it; it is optional.
type History interface {
	SaveScore(gameID string, score int) (int64, error)
}

// MemoryStore is an in-process Persistence, used by tests and when the
// database cannot be opened.
type MemoryStore struct {
	mu    sync.Mutex
	state State

	// LoadErr and SaveErr, when set, are returned instead of touching the
	// stored state.
	LoadErr error
	SaveErr error
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored state.
func (m *MemoryStore) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return State{}, m.LoadErr
	}
	out := m.state
	out.Ranking = append([]Entry(nil), m.state.Ranking...)
	return out, nil
}

// Save replaces the stored state.
func (m *MemoryStore) Save(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.state = s
	m.state.Ranking = append([]Entry(nil), s.Ranking...)
	return nil
}

// ErrEmptyName is returned when saving a blank player name.
var ErrEmptyName = errors.New("ranking: player name is empty")

// LoadPlayerName returns the remembered player name, or "" if there is none
// or the store cannot be read.
func LoadPlayerName(p Persistence) string {
	if p == nil {
		return ""
	}
	s, err := p.Load()
	if err != nil {
		return ""
	}
	return s.PlayerName
}

// SavePlayerName remembers name, keeping the stored ranking. Nothing is
// written if the stored state cannot be read.
func SavePlayerName(p Persistence, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if p == nil {
		return nil
	}
	commitMu.Lock()
	defer commitMu.Unlock()

	s, err := p.Load()
	if err != nil {
		return fmt.Errorf("ranking: cannot read state: %w", err)
	}
	s.PlayerName = name
	return p.Save(s)
}
