package nakama

import (
	"context"
	"fmt"

	"scoundrel/internal/config"
	"scoundrel/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

// leaderboardWriter is the subset of runtime.NakamaModule used to record runs.
type leaderboardWriter interface {
	LeaderboardCreate(ctx context.Context, id string, authoritative bool, sortOrder, operator, resetSchedule string, metadata map[string]interface{}, enableRanks bool) error
	LeaderboardRecordWrite(ctx context.Context, id, ownerID, username string, score, subscore int64, metadata map[string]interface{}, overrideOperator *int) (*api.LeaderboardRecord, error)
}

// NakamaLeaderboardAdapter implements ports.LeaderboardPort on a Nakama leaderboard.
type NakamaLeaderboardAdapter struct {
	nk leaderboardWriter
	id string
}

func NewNakamaLeaderboardAdapter(nk leaderboardWriter, id string) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk, id: id}
}

// EnsureLeaderboard creates the leaderboard described by cfg. Creating an existing one is a no-op in Nakama.
func EnsureLeaderboard(ctx context.Context, nk leaderboardWriter, cfg config.LeaderboardConfig) error {
	metadata := map[string]interface{}{"game": "scoundrel"}
	if err := nk.LeaderboardCreate(ctx, cfg.ID, true, cfg.SortOrder, cfg.Operator, cfg.ResetSchedule, metadata, true); err != nil {
		return fmt.Errorf("failed to create leaderboard %s: %w", cfg.ID, err)
	}
	return nil
}

// SubmitScore writes the run score with remaining life as the tie-breaking subscore.
func (a *NakamaLeaderboardAdapter) SubmitScore(ctx context.Context, record ports.ScoreRecord) error {
	if record.UserID == "" {
		return fmt.Errorf("userID is required")
	}

	metadata := map[string]interface{}{"run_id": record.RunID}
	for k, v := range record.Metadata {
		metadata[k] = v
	}

	if _, err := a.nk.LeaderboardRecordWrite(ctx, a.id, record.UserID, record.Username, record.Score, record.Life, metadata, nil); err != nil {
		return fmt.Errorf("failed to write leaderboard record for user %s: %w", record.UserID, err)
	}
	return nil
}

var _ ports.LeaderboardPort = (*NakamaLeaderboardAdapter)(nil)
