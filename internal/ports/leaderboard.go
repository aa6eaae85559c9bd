package ports

import "context"

// ScoreRecord is a finished run submitted to the leaderboard.
type ScoreRecord struct {
	UserID   string
	Username string
	RunID    string
	Score    int64
	// Life is the remaining life at the end of the run, stored as subscore.
	Life     int64
	Metadata map[string]interface{}
}

// LeaderboardPort defines the interface for recording finished runs.
type LeaderboardPort interface {
	// SubmitScore writes the run result for the owning user.
	// Implementations decide how a better or worse score replaces an existing record.
	SubmitScore(ctx context.Context, record ScoreRecord) error
}
