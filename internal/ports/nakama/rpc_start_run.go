package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// StartRunResponse is the payload returned to clients when opening a run.
type StartRunResponse struct {
	MatchID string `json:"match_id"`
	Resumed bool   `json:"resumed"`
}

// matchStarter is the subset of runtime.NakamaModule needed to find or create a run.
type matchStarter interface {
	MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error)
	MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error)
}

// RpcStartRunHandler resumes the caller's live run if one exists, otherwise creates a new match owned by the caller.
//
// Payload: unused.
// Returns: JSON StartRunResponse.
func RpcStartRunHandler(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return startRun(ctx, logger, nk)
}

func startRun(ctx context.Context, logger runtime.Logger, nk matchStarter) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", 16) // UNAUTHENTICATED
	}

	limit := 1
	minSize := 0
	maxSize := 1
	query := fmt.Sprintf("+label.game:scoundrel +label.owner:%q", userID)
	matches, err := nk.MatchList(ctx, limit, true, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("RpcStartRun [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	resp := StartRunResponse{}
	if len(matches) > 0 {
		resp.MatchID = matches[0].MatchId
		resp.Resumed = true
		logger.Info("RpcStartRun [User:%s]: Resuming match %s", userID, resp.MatchID)
	} else {
		resp.MatchID, err = nk.MatchCreate(ctx, MatchNameScoundrel, map[string]interface{}{MatchParamOwner: userID})
		if err != nil {
			logger.Error("RpcStartRun [User:%s]: Failed to create match: %v", userID, err)
			return "", err
		}
		logger.Info("RpcStartRun [User:%s]: Created match %s", userID, resp.MatchID)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}
	return string(b), nil
}
