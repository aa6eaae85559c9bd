package app

import (
	"math/rand"
	"testing"

	"scoundrel/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(seed int64) *Service {
	return NewService(rand.New(rand.NewSource(seed)), domain.DefaultRules())
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func TestStartRunDrawsRoom(t *testing.T) {
	svc := newTestService(42)

	run, events := svc.StartRun("u1")

	require.NotNil(t, run.Game)
	assert.Equal(t, "u1", run.UserID)
	assert.Len(t, run.Game.Hand, 4)
	assert.Len(t, run.Game.Deck, domain.DeckSize-4)
	assert.False(t, run.StartedAt.IsZero())

	require.Len(t, events, 1)
	assert.Equal(t, EventRunStarted, events[0].Kind)
	payload := events[0].Payload.(RunStartedPayload)
	assert.Equal(t, run.ID.String(), payload.RunID)
	assert.Equal(t, run.Game.Hand, payload.Hand)
}

func TestApplyRejectsForeignActor(t *testing.T) {
	svc := newTestService(1)
	run, _ := svc.StartRun("u1")

	_, err := svc.Apply(run, "u2", domain.Action{Kind: domain.ActionSkip})
	assert.ErrorIs(t, err, ErrNotRunOwner)

	_, err = svc.Apply(nil, "u1", domain.Action{Kind: domain.ActionSkip})
	assert.ErrorIs(t, err, ErrNoRun)
}

func TestApplyWrapsDomainErrors(t *testing.T) {
	svc := newTestService(1)
	run, _ := svc.StartRun("u1")

	_, err := svc.Apply(run, "u1", domain.Fight(domain.FightBarehanded))
	assert.ErrorIs(t, err, domain.ErrNoFightPending)
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestApplyMonsterThenFight(t *testing.T) {
	svc := newTestService(1)
	run, _ := svc.StartRun("u1")
	monster := domain.Card{Suit: domain.SuitClubs, Rank: 9}
	run.Game.Hand = []domain.Card{monster, {Suit: domain.SuitHearts, Rank: 2}, {Suit: domain.SuitClubs, Rank: 2}}

	events, err := svc.Apply(run, "u1", domain.PlayCard(monster))
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventOpponentRevealed}, eventKinds(events))
	revealed := events[0].Payload.(OpponentRevealedPayload)
	assert.Equal(t, monster, revealed.Opponent)
	assert.False(t, revealed.WeaponUsable)

	events, err = svc.Apply(run, "u1", domain.Fight(domain.FightBarehanded))
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventFightResolved}, eventKinds(events))
	fought := events[0].Payload.(FightResolvedPayload)
	assert.Equal(t, 9, fought.Damage)
	assert.Equal(t, 11, fought.Life)
	assert.Equal(t, -208+9, fought.Score)
}

func TestApplyRefillEmitsCardsDrawn(t *testing.T) {
	svc := newTestService(3)
	run, _ := svc.StartRun("u1")
	potion := domain.Card{Suit: domain.SuitHearts, Rank: 4}
	run.Game.Hand = []domain.Card{potion, {Suit: domain.SuitSpades, Rank: 2}}
	run.Game.Deck = []domain.Card{{Suit: domain.SuitClubs, Rank: 5}, {Suit: domain.SuitClubs, Rank: 6}, {Suit: domain.SuitClubs, Rank: 7}, {Suit: domain.SuitClubs, Rank: 8}}

	events, err := svc.Apply(run, "u1", domain.PlayCard(potion))
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventPotionUsed, EventCardsDrawn}, eventKinds(events))
	drawn := events[1].Payload.(CardsDrawnPayload)
	assert.Len(t, drawn.Cards, 3)
	assert.Equal(t, 1, drawn.DeckCount)
}

func TestApplyEndsRunOnce(t *testing.T) {
	svc := newTestService(5)
	run, _ := svc.StartRun("u1")
	monster := domain.Card{Suit: domain.SuitSpades, Rank: domain.RankAce}
	run.Game.Life = 3
	run.Game.Hand = []domain.Card{monster, {Suit: domain.SuitClubs, Rank: 2}, {Suit: domain.SuitClubs, Rank: 3}}

	_, err := svc.Apply(run, "u1", domain.PlayCard(monster))
	require.NoError(t, err)
	events, err := svc.Apply(run, "u1", domain.Fight(domain.FightBarehanded))
	require.NoError(t, err)

	require.Equal(t, []EventKind{EventFightResolved, EventRunEnded}, eventKinds(events))
	ended := events[1].Payload.(RunEndedPayload)
	assert.Equal(t, run.ID.String(), ended.RunID)
	assert.False(t, ended.Cleared)
	assert.Equal(t, -11, ended.Life)
	assert.True(t, run.Ended())
	assert.False(t, run.EndedAt.IsZero())

	_, err = svc.Apply(run, "u1", domain.Action{Kind: domain.ActionSkip})
	assert.ErrorIs(t, err, domain.ErrGameOver)
}

func TestApplyRestartIssuesNewRunID(t *testing.T) {
	svc := newTestService(9)
	run, _ := svc.StartRun("u1")
	oldID := run.ID
	run.Game.Over = true

	events, err := svc.Apply(run, "u1", domain.Action{Kind: domain.ActionRestart})
	require.NoError(t, err)

	require.Equal(t, []EventKind{EventRunStarted}, eventKinds(events))
	assert.NotEqual(t, oldID, run.ID)
	assert.False(t, run.Game.Over)
	assert.Len(t, run.Game.Hand, 4)
	assert.True(t, run.EndedAt.IsZero())
}

func TestApplySkip(t *testing.T) {
	svc := newTestService(13)
	run, _ := svc.StartRun("u1")

	events, err := svc.Apply(run, "u1", domain.Action{Kind: domain.ActionSkip})
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventRoomSkipped}, eventKinds(events))
	assert.Equal(t, run.Game.Hand, events[0].Payload.(RoomSkippedPayload).Hand)

	_, err = svc.Apply(run, "u1", domain.Action{Kind: domain.ActionSkip})
	assert.ErrorIs(t, err, domain.ErrAlreadySkipped)
}
