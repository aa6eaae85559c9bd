package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"scoundrel/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNoRun       = errors.New("no active run")
	ErrNotRunOwner = errors.New("actor does not own this run")
)

// Run is one dungeon attempt owned by a single player.
type Run struct {
	ID        uuid.UUID
	UserID    string
	Game      *domain.Game
	StartedAt time.Time
	EndedAt   time.Time
}

// Ended reports whether the run's game is over.
func (r *Run) Ended() bool {
	return r != nil && r.Game != nil && r.Game.Over
}

// Service contains Scoundrel use-cases operating on domain state.
type Service struct {
	rng   *rand.Rand
	rules domain.Rules
	now   func() time.Time
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand, rules domain.Rules) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, rules: rules, now: time.Now}
}

// Rules returns the rules new runs are created with.
func (s *Service) Rules() domain.Rules {
	return s.rules
}

// StartRun shuffles a new dungeon for userID and draws its first room.
func (s *Service) StartRun(userID string) (*Run, []Event) {
	game := domain.NewGame(s.rules, s.rng)
	hand := game.Restart(s.rng)

	run := &Run{
		ID:        uuid.New(),
		UserID:    userID,
		Game:      game,
		StartedAt: s.now(),
	}
	return run, []Event{{
		Kind:    EventRunStarted,
		Payload: RunStartedPayload{RunID: run.ID.String(), Hand: hand},
	}}
}

// Apply validates that actorUserID owns run, performs action and returns the resulting events.
// A restart replaces the run's game and ID in place.
func (s *Service) Apply(run *Run, actorUserID string, action domain.Action) ([]Event, error) {
	if run == nil || run.Game == nil {
		return nil, ErrNoRun
	}
	if run.UserID != actorUserID {
		return nil, ErrNotRunOwner
	}

	wasOver := run.Game.Over
	out, err := run.Game.Apply(action, s.rng)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action.Kind, err)
	}

	if action.Kind == domain.ActionRestart {
		run.ID = uuid.New()
		run.StartedAt = s.now()
		run.EndedAt = time.Time{}
		return []Event{{
			Kind:    EventRunStarted,
			Payload: RunStartedPayload{RunID: run.ID.String(), Hand: out.Drawn},
		}}, nil
	}

	events := s.eventsFor(run.Game, action, out)
	if !wasOver && run.Game.Over {
		run.EndedAt = s.now()
		events = append(events, Event{
			Kind: EventRunEnded,
			Payload: RunEndedPayload{
				RunID:   run.ID.String(),
				Score:   run.Game.Score,
				Life:    run.Game.Life,
				Cleared: run.Game.Life > 0,
			},
		})
	}
	return events, nil
}

func (s *Service) eventsFor(game *domain.Game, action domain.Action, out domain.Outcome) []Event {
	var events []Event

	switch action.Kind {
	case domain.ActionDrawInitial:
		// drawn cards are reported below
	case domain.ActionSkip:
		events = append(events, Event{Kind: EventRoomSkipped, Payload: RoomSkippedPayload{Hand: out.Drawn}})
	case domain.ActionCancelFight:
		events = append(events, Event{Kind: EventFightCancelled})
	case domain.ActionFight:
		events = append(events, Event{
			Kind: EventFightResolved,
			Payload: FightResolvedPayload{
				Opponent: out.Card,
				Mode:     out.Mode,
				Damage:   out.Damage,
				Life:     game.Life,
				Score:    game.Score,
			},
		})
	case domain.ActionPlayCard:
		switch out.Kind {
		case domain.KindMonster:
			events = append(events, Event{
				Kind:    EventOpponentRevealed,
				Payload: OpponentRevealedPayload{Opponent: out.Card, WeaponUsable: game.CanUseWeapon()},
			})
		case domain.KindPotion:
			events = append(events, Event{
				Kind:    EventPotionUsed,
				Payload: PotionUsedPayload{Potion: out.Card, Healed: out.Healed, Life: game.Life},
			})
		case domain.KindWeapon:
			events = append(events, Event{
				Kind:    EventWeaponEquipped,
				Payload: WeaponEquippedPayload{Weapon: out.Card, Strength: domain.Power(out.Card)},
			})
		}
	}

	if len(out.Drawn) > 0 && action.Kind != domain.ActionSkip {
		events = append(events, Event{
			Kind:    EventCardsDrawn,
			Payload: CardsDrawnPayload{Cards: out.Drawn, DeckCount: len(game.Deck)},
		})
	}
	return events
}
