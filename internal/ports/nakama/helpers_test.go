package nakama

import (
	"context"
	"math/rand"
	"testing"

	"scoundrel/internal/app"
	"scoundrel/internal/config"
	"scoundrel/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type sentMessage struct {
	opCode    int64
	data      []byte
	presences []runtime.Presence
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	sent         []sentMessage
	labelUpdates int
	lastLabel    string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.sent = append(md.sent, sentMessage{opCode: opCode, data: append([]byte(nil), data...), presences: presences})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	md.lastLabel = label
	return nil
}

// byOp returns the decoded bodies of every message sent with opCode.
func (md *mockDispatcher) byOp(t *testing.T, opCode int64) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, m := range md.sent {
		if m.opCode != opCode {
			continue
		}
		body, err := decodeStruct(m.data)
		if err != nil {
			t.Fatalf("decode op %d: %v", opCode, err)
		}
		out = append(out, body)
	}
	return out
}

func (md *mockDispatcher) reset() {
	md.sent = nil
}

// fakePresence overrides the presence getters the match handler reads.
type fakePresence struct {
	runtime.Presence
	userID    string
	sessionID string
	username  string
}

func (p *fakePresence) GetUserId() string    { return p.userID }
func (p *fakePresence) GetSessionId() string { return p.sessionID }
func (p *fakePresence) GetUsername() string  { return p.username }

// fakeMatchData is a client message from a presence.
type fakeMatchData struct {
	runtime.MatchData
	presence *fakePresence
	opCode   int64
	data     []byte
}

func (m *fakeMatchData) GetUserId() string    { return m.presence.userID }
func (m *fakeMatchData) GetSessionId() string { return m.presence.sessionID }
func (m *fakeMatchData) GetUsername() string  { return m.presence.username }
func (m *fakeMatchData) GetOpCode() int64     { return m.opCode }
func (m *fakeMatchData) GetData() []byte      { return m.data }

func message(t *testing.T, from *fakePresence, opCode int64, body map[string]interface{}) runtime.MatchData {
	t.Helper()
	var data []byte
	if body != nil {
		var err error
		data, err = encodeStruct(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	return &fakeMatchData{presence: from, opCode: opCode, data: data}
}

type fakeLeaderboard struct {
	records []ports.ScoreRecord
	err     error
}

func (f *fakeLeaderboard) SubmitScore(ctx context.Context, record ports.ScoreRecord) error {
	f.records = append(f.records, record)
	return f.err
}

func newTestHandler(leaderboard ports.LeaderboardPort, receipts *app.ReceiptService) *matchHandler {
	mh := newMatchHandler(config.Default(), leaderboard, receipts)
	mh.newRNG = func() *rand.Rand { return rand.New(rand.NewSource(7)) }
	return mh
}

// startedMatch initialises a match owned by owner and joins the owner.
func startedMatch(t *testing.T, mh *matchHandler, owner *fakePresence) (*MatchState, *mockDispatcher) {
	t.Helper()
	raw, _, _ := mh.MatchInit(context.Background(), noopLogger{}, nil, nil, map[string]interface{}{MatchParamOwner: owner.userID})
	state, ok := raw.(*MatchState)
	if !ok {
		t.Fatalf("MatchInit returned %T", raw)
	}
	dispatcher := &mockDispatcher{}
	mh.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{owner})
	return state, dispatcher
}
