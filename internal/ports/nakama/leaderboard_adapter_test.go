package nakama

import (
	"context"
	"errors"
	"testing"

	"scoundrel/internal/config"
	"scoundrel/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

type leaderboardWrite struct {
	id, ownerID, username string
	score, subscore       int64
	metadata              map[string]interface{}
}

type fakeLeaderboardWriter struct {
	createdID string
	sortOrder string
	operator  string
	writes    []leaderboardWrite
	err       error
}

func (f *fakeLeaderboardWriter) LeaderboardCreate(ctx context.Context, id string, authoritative bool, sortOrder, operator, resetSchedule string, metadata map[string]interface{}, enableRanks bool) error {
	f.createdID = id
	f.sortOrder = sortOrder
	f.operator = operator
	return f.err
}

func (f *fakeLeaderboardWriter) LeaderboardRecordWrite(ctx context.Context, id, ownerID, username string, score, subscore int64, metadata map[string]interface{}, overrideOperator *int) (*api.LeaderboardRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.writes = append(f.writes, leaderboardWrite{id: id, ownerID: ownerID, username: username, score: score, subscore: subscore, metadata: metadata})
	return &api.LeaderboardRecord{LeaderboardId: id, OwnerId: ownerID}, nil
}

func TestEnsureLeaderboard(t *testing.T) {
	nk := &fakeLeaderboardWriter{}
	cfg := config.Default().Leaderboard

	if err := EnsureLeaderboard(context.Background(), nk, cfg); err != nil {
		t.Fatalf("EnsureLeaderboard failed: %v", err)
	}
	if nk.createdID != cfg.ID || nk.sortOrder != "desc" || nk.operator != "best" {
		t.Errorf("Unexpected leaderboard %+v", nk)
	}

	nk.err = errors.New("db down")
	if err := EnsureLeaderboard(context.Background(), nk, cfg); err == nil {
		t.Fatal("Expected create failure to surface")
	}
}

func TestLeaderboardAdapter_SubmitScore(t *testing.T) {
	nk := &fakeLeaderboardWriter{}
	adapter := NewNakamaLeaderboardAdapter(nk, "scoundrel_best")

	err := adapter.SubmitScore(context.Background(), ports.ScoreRecord{
		UserID:   "user-1",
		Username: "SlyKnave1000",
		RunID:    "run-1",
		Score:    -12,
		Life:     4,
		Metadata: map[string]interface{}{"cleared": true},
	})
	if err != nil {
		t.Fatalf("SubmitScore failed: %v", err)
	}
	if len(nk.writes) != 1 {
		t.Fatalf("Expected 1 write, got %d", len(nk.writes))
	}
	w := nk.writes[0]
	if w.id != "scoundrel_best" || w.ownerID != "user-1" || w.score != -12 || w.subscore != 4 {
		t.Errorf("Unexpected write %+v", w)
	}
	if w.metadata["run_id"] != "run-1" || w.metadata["cleared"] != true {
		t.Errorf("Unexpected metadata %v", w.metadata)
	}
}

func TestLeaderboardAdapter_Errors(t *testing.T) {
	adapter := NewNakamaLeaderboardAdapter(&fakeLeaderboardWriter{}, "scoundrel_best")
	if err := adapter.SubmitScore(context.Background(), ports.ScoreRecord{}); err == nil {
		t.Fatal("Expected error without user id")
	}

	failing := NewNakamaLeaderboardAdapter(&fakeLeaderboardWriter{err: errors.New("db down")}, "scoundrel_best")
	if err := failing.SubmitScore(context.Background(), ports.ScoreRecord{UserID: "user-1"}); err == nil {
		t.Fatal("Expected write failure to surface")
	}
}
