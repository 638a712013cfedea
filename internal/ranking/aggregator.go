package ranking

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/engine"
)

// commitMu serializes Load-Commit-Save cycles of every aggregator in the
// process, so concurrent SSH sessions sharing one store do not lose updates.
var commitMu sync.Mutex

// GameScore is one line of a player's breakdown.
type GameScore struct {
	GameID string
	Score  int
}

// Aggregator collects one player's game scores across a party and commits
// the total to the persisted ranking. It implements engine.ScoreAggregator.
type Aggregator struct {
	mu     sync.Mutex
	scores map[string]int
	order  []string

	store   Persistence
	history History
	size    int
	now     func() time.Time
	logger  *log.Logger
}

// NewAggregator creates an empty tally backed by store. A nil store keeps
// the ranking in memory only.
func NewAggregator(store Persistence, logger *log.Logger) *Aggregator {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Aggregator{
		scores: make(map[string]int),
		store:  store,
		size:   DefaultSize,
		now:    time.Now,
		logger: logger,
	}
}

// SetHistory makes every recorded score also append to h.
func (a *Aggregator) SetHistory(h History) {
	a.history = h
}

// SetSize changes the number of ranking entries kept.
func (a *Aggregator) SetSize(n int) {
	if n > 0 {
		a.size = n
	}
}

// SetClock replaces the time source used for entry timestamps.
func (a *Aggregator) SetClock(now func() time.Time) {
	a.now = now
}

// RecordGameScore stores the final score of a game, replacing an earlier
// score for the same game. Negative scores are stored as zero.
func (a *Aggregator) RecordGameScore(gameID string, score int) {
	score = max(0, score)

	a.mu.Lock()
	if _, ok := a.scores[gameID]; !ok {
		a.order = append(a.order, gameID)
	}
	a.scores[gameID] = score
	a.mu.Unlock()

	a.logger.Info("game score recorded", "game", gameID, "score", score)
	if a.history != nil {
		if _, err := a.history.SaveScore(gameID, score); err != nil {
			a.logger.Warn("cannot save score history", "game", gameID, "err", err)
		}
	}
}

// AggregateTotal returns the sum of the recorded scores.
func (a *Aggregator) AggregateTotal() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for _, s := range a.scores {
		total += s
	}
	return total
}

// Scores returns the recorded scores in the order games were first played.
func (a *Aggregator) Scores() []GameScore {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]GameScore, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, GameScore{GameID: id, Score: a.scores[id]})
	}
	return out
}

// Reset forgets every recorded score. The persisted ranking is kept.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.scores)
	a.order = nil
}

// CommitToRanking offers total under name to the persisted ranking and
// reports whether the ranking changed. Storage that cannot be read is left
// untouched, and like a failed save it is logged and reported as unchanged.
func (a *Aggregator) CommitToRanking(name string, total int) bool {
	commitMu.Lock()
	defer commitMu.Unlock()

	state, err := a.store.Load()
	if err != nil {
		a.logger.Error("ranking unavailable, commit skipped", "player", name, "total", total, "err", err)
		return false
	}

	board := NewBoard(a.size, state.Ranking)
	if !board.Commit(name, total, a.now()) {
		a.logger.Debug("ranking unchanged", "player", name, "total", total)
		return false
	}

	state.Ranking = board.Entries()
	if err := a.store.Save(state); err != nil {
		a.logger.Error("cannot save ranking", "err", err)
		return false
	}
	a.logger.Info("ranking updated", "player", name, "total", total, "rank", board.Rank(name))
	return true
}

// Ensure Aggregator implements ScoreAggregator
var _ engine.ScoreAggregator = (*Aggregator)(nil)

// Ranking returns the persisted leaderboard, or an empty one if storage
// cannot be read.
func (a *Aggregator) Ranking() []Entry {
	state, err := a.store.Load()
	if err != nil {
		a.logger.Warn("ranking unavailable", "err", err)
		return nil
	}
	return NewBoard(a.size, state.Ranking).Entries()
}
