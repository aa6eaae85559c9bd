package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"scoundrel/internal/app"
	"scoundrel/internal/config"
	"scoundrel/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	// MatchParamOwner carries the user id that owns the run into MatchInit.
	MatchParamOwner = "owner"
)

// MatchState holds the authoritative runtime state for a single-player run.
type MatchState struct {
	OwnerID  string `json:"owner_id"`
	Username string `json:"username"`
	// Presence is nil while the owner is disconnected.
	Presence runtime.Presence `json:"-"`
	Tick     int64            `json:"tick"`
	// LastSeenTick is the last tick the owner was connected.
	LastSeenTick int64 `json:"last_seen_tick"`
	// IdleTimeoutTicks without the owner terminate the match; 0 disables the timeout.
	IdleTimeoutTicks int64 `json:"idle_timeout_ticks"`
	// Submitted is set once the current run's result has been recorded.
	Submitted bool `json:"submitted"`

	Run         *app.Run              `json:"-"`
	App         *app.Service          `json:"-"`
	Receipts    *app.ReceiptService   `json:"-"`
	Leaderboard ports.LeaderboardPort `json:"-"`
}

// ownerConnected reports whether the owner currently has a presence in the match.
func (ms *MatchState) ownerConnected() bool {
	return ms.Presence != nil
}

// idleExpired reports whether the owner has been gone long enough to drop the run.
func (ms *MatchState) idleExpired(tick int64) bool {
	if ms.ownerConnected() || ms.IdleTimeoutTicks <= 0 {
		return false
	}
	return tick-ms.LastSeenTick >= ms.IdleTimeoutTicks
}

type matchHandler struct {
	cfg         *config.GameConfig
	leaderboard ports.LeaderboardPort
	receipts    *app.ReceiptService
	newRNG      func() *rand.Rand
}

func newMatchHandler(cfg *config.GameConfig, leaderboard ports.LeaderboardPort, receipts *app.ReceiptService) *matchHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &matchHandler{
		cfg:         cfg,
		leaderboard: leaderboard,
		receipts:    receipts,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// MatchInit is called when the match is created by the start_run RPC.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	ownerID, _ := params[MatchParamOwner].(string)
	if ownerID == "" {
		logger.Error("MatchInit: Missing %s param.", MatchParamOwner)
		return nil, 0, ""
	}

	service := app.NewService(mh.newRNG(), mh.cfg.DomainRules())
	run, _ := service.StartRun(ownerID)

	state := &MatchState{
		OwnerID:          ownerID,
		IdleTimeoutTicks: mh.cfg.IdleTimeoutTicks(),
		Run:              run,
		App:              service,
		Receipts:         mh.receipts,
		Leaderboard:      mh.leaderboard,
	}

	label, err := encodeLabel(labelFields(state))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Debug("MatchInit: Run %s created for %s.", run.ID, ownerID)
	return state, mh.cfg.Match.TickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if presence.GetUserId() != matchState.OwnerID {
		logger.Warn("MatchJoinAttempt: User %s rejected from run owned by %s.", presence.GetUserId(), matchState.OwnerID)
		return matchState, false, "run is private"
	}

	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() != matchState.OwnerID {
			continue
		}
		// A reconnect replaces the previous session.
		matchState.Presence = p
		matchState.Username = p.GetUsername()
		matchState.LastSeenTick = tick
		logger.Debug("MatchJoin: Owner %s connected (session %s).", p.GetUserId(), p.GetSessionId())
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave keeps the run alive so the owner can reconnect until the idle timeout.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.Presence == nil || p.GetSessionId() != matchState.Presence.GetSessionId() {
			continue
		}
		matchState.Presence = nil
		matchState.LastSeenTick = tick
		logger.Debug("MatchLeave: Owner %s disconnected at tick %d.", p.GetUserId(), tick)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick
	if matchState.ownerConnected() {
		matchState.LastSeenTick = tick
	}

	if matchState.idleExpired(tick) {
		logger.Info("MatchLoop: Owner %s idle since tick %d, terminating run.", matchState.OwnerID, matchState.LastSeenTick)
		return nil
	}

	for _, msg := range messages {
		mh.handleAction(ctx, matchState, dispatcher, logger, msg)
	}

	return matchState
}

// handleAction applies one client message to the run and publishes the result.
func (mh *matchHandler) handleAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if senderID != state.OwnerID {
		logger.Warn("handleAction: User %s is not the owner of this run.", senderID)
		mh.sendError(dispatcher, logger, msg, ErrCodeForbidden, app.ErrNotRunOwner.Error())
		return
	}

	action, err := actionFromMessage(msg.GetOpCode(), msg.GetData())
	if err != nil {
		logger.Warn("handleAction: Invalid message from %s (op %d): %v", senderID, msg.GetOpCode(), err)
		mh.sendError(dispatcher, logger, msg, ErrCodeRejected, err.Error())
		return
	}

	events, err := state.App.Apply(state.Run, senderID, action)
	if err != nil {
		logger.Warn("handleAction: User %s failed to %s: %v", senderID, action, err)
		code := ErrCodeRejected
		if errors.Is(err, app.ErrNotRunOwner) {
			code = ErrCodeForbidden
		}
		mh.sendError(dispatcher, logger, msg, code, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.broadcastState(state, dispatcher, logger)
}

// broadcastEvent forwards an app event to the owner and reacts to run boundaries.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	switch ev.Kind {
	case app.EventRunStarted:
		state.Submitted = false
		mh.updateLabel(state, dispatcher, logger)
	case app.EventRunEnded:
		mh.finishRun(ctx, state, dispatcher, logger, ev.Payload.(app.RunEndedPayload))
		return
	}

	body, err := eventToMap(ev)
	if err != nil {
		logger.Error("broadcastEvent: %v", err)
		return
	}
	mh.sendToOwner(state, dispatcher, logger, OpEvent, body)
}

// finishRun records the result once per run and sends the final summary with its receipt.
func (mh *matchHandler) finishRun(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, p app.RunEndedPayload) {
	if state.Submitted {
		return
	}
	state.Submitted = true

	if state.Leaderboard != nil {
		matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
		record := ports.ScoreRecord{
			UserID:   state.OwnerID,
			Username: state.Username,
			RunID:    p.RunID,
			Score:    int64(p.Score),
			Life:     int64(p.Life),
			Metadata: map[string]interface{}{
				"match_id": matchID,
				"cleared":  p.Cleared,
			},
		}
		if err := state.Leaderboard.SubmitScore(ctx, record); err != nil {
			logger.Error("finishRun: Failed to submit score for run %s: %v", p.RunID, err)
		}
	}

	body := map[string]interface{}{
		"kind":    string(app.EventRunEnded),
		"run_id":  p.RunID,
		"score":   p.Score,
		"life":    p.Life,
		"cleared": p.Cleared,
		"receipt": nil,
	}
	if state.Receipts != nil {
		token, err := state.Receipts.Issue(state.Run)
		if err != nil {
			logger.Error("finishRun: Failed to issue receipt for run %s: %v", p.RunID, err)
		} else {
			body["receipt"] = token
		}
	}

	logger.Info("finishRun: Run %s ended for %s (score=%d, life=%d).", p.RunID, state.OwnerID, p.Score, p.Life)
	mh.sendToOwner(state, dispatcher, logger, OpRunEnded, body)
	mh.updateLabel(state, dispatcher, logger)
}

func (mh *matchHandler) broadcastState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Run == nil || state.Run.Game == nil {
		return
	}
	mh.sendToOwner(state, dispatcher, logger, OpState, snapshotToMap(state.Run.ID.String(), state.Run.Game.Snapshot()))
}

func (mh *matchHandler) sendToOwner(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, body map[string]interface{}) {
	if !state.ownerConnected() {
		return
	}
	bytes, err := encodeStruct(body)
	if err != nil {
		logger.Error("sendToOwner: Failed to marshal op %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, []runtime.Presence{state.Presence}, nil, true); err != nil {
		logger.Error("sendToOwner: Failed to send op %d: %v", opCode, err)
	}
}

// sendError sends an error body privately to the presence that caused it.
func (mh *matchHandler) sendError(dispatcher runtime.MatchDispatcher, logger runtime.Logger, to runtime.Presence, code int, message string) {
	bytes, err := encodeStruct(map[string]interface{}{
		"code":    code,
		"message": message,
	})
	if err != nil {
		logger.Error("sendError: Failed to marshal error: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpError, bytes, []runtime.Presence{to}, nil, true); err != nil {
		logger.Error("sendError: Failed to send error to %s: %v", to.GetUserId(), err)
	}
}

func labelFields(state *MatchState) map[string]interface{} {
	fields := map[string]interface{}{
		"game":      "scoundrel",
		"owner":     state.OwnerID,
		"connected": state.ownerConnected(),
		"phase":     "",
		"score":     0,
	}
	if state.Run != nil && state.Run.Game != nil {
		fields["phase"] = string(state.Run.Game.Phase())
		fields["score"] = state.Run.Game.Score
	}
	return fields
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeLabel(labelFields(state))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d seconds grace.", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
