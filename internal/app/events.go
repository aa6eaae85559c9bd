package app

import "scoundrel/internal/domain"

// EventKind identifies emitted run events for Nakama dispatch.
type EventKind string

const (
	EventRunStarted       EventKind = "run_started"
	EventCardsDrawn       EventKind = "cards_drawn"
	EventOpponentRevealed EventKind = "opponent_revealed"
	EventFightCancelled   EventKind = "fight_cancelled"
	EventFightResolved    EventKind = "fight_resolved"
	EventPotionUsed       EventKind = "potion_used"
	EventWeaponEquipped   EventKind = "weapon_equipped"
	EventRoomSkipped      EventKind = "room_skipped"
	EventRunEnded         EventKind = "run_ended"
)

// Event is an app event produced by a single player action.
type Event struct {
	Kind    EventKind
	Payload any
}

type RunStartedPayload struct {
	RunID string
	Hand  []domain.Card
}

type CardsDrawnPayload struct {
	Cards     []domain.Card
	DeckCount int
}

type OpponentRevealedPayload struct {
	Opponent     domain.Card
	WeaponUsable bool
}

type FightResolvedPayload struct {
	Opponent domain.Card
	Mode     domain.FightMode
	Damage   int
	Life     int
	Score    int
}

type PotionUsedPayload struct {
	Potion domain.Card
	Healed int
	Life   int
}

type WeaponEquippedPayload struct {
	Weapon   domain.Card
	Strength int
}

type RoomSkippedPayload struct {
	Hand []domain.Card
}

type RunEndedPayload struct {
	RunID   string
	Score   int
	Life    int
	Cleared bool // survived until the last card
}
