package engine

// Navigator moves the party to another stage. It is called once per round,
// after the handoff delay that follows Over.
type Navigator interface {
	GoToStage(stage string)
}

// ScoreAggregator collects per-game scores for one player across the party.
type ScoreAggregator interface {
	// RecordGameScore stores the final score of gameID, replacing any
	// earlier score for the same game.
	RecordGameScore(gameID string, score int)
	// AggregateTotal returns the sum of the recorded game scores.
	AggregateTotal() int
	// CommitToRanking offers total under name to the ranking and reports
	// whether the ranking changed.
	CommitToRanking(name string, total int) bool
}
