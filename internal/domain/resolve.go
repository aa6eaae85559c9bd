package domain

import (
	"fmt"
	"math/rand"
)

// ActionKind enumerates the mutating entry points of the engine.
type ActionKind string

const (
	ActionDrawInitial ActionKind = "draw_initial"
	ActionPlayCard    ActionKind = "play_card"
	ActionFight       ActionKind = "fight"
	ActionCancelFight ActionKind = "cancel_fight"
	ActionSkip        ActionKind = "skip"
	ActionRestart     ActionKind = "restart"
)

// Action is one discrete player input. Card is read for ActionPlayCard and Mode for ActionFight.
type Action struct {
	Kind ActionKind
	Card Card
	Mode FightMode
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlayCard:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Card)
	case ActionFight:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Mode)
	default:
		return string(a.Kind)
	}
}

// PlayCard builds a play action for card.
func PlayCard(card Card) Action { return Action{Kind: ActionPlayCard, Card: card} }

// Fight builds a fight action with the given mode.
func Fight(mode FightMode) Action { return Action{Kind: ActionFight, Mode: mode} }

// Apply performs action on g in place. rng is only used by ActionRestart.
// A rejected action leaves g unchanged.
func (g *Game) Apply(action Action, rng *rand.Rand) (Outcome, error) {
	switch action.Kind {
	case ActionDrawInitial:
		drawn, err := g.DrawInitial()
		return Outcome{Drawn: drawn}, err
	case ActionPlayCard:
		return g.PlayCard(action.Card)
	case ActionFight:
		return g.Fight(action.Mode)
	case ActionCancelFight:
		return Outcome{}, g.CancelFight()
	case ActionSkip:
		drawn, err := g.Skip()
		return Outcome{Drawn: drawn}, err
	case ActionRestart:
		if rng == nil {
			return Outcome{}, ErrRandomSourceNil
		}
		return Outcome{Drawn: g.Restart(rng)}, nil
	default:
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, action.Kind)
	}
}

// Resolve applies action to a copy of g and returns the new state. The input is never mutated.
func Resolve(g *Game, action Action, rng *rand.Rand) (*Game, Outcome, error) {
	next := g.Clone()
	out, err := next.Apply(action, rng)
	if err != nil {
		return g, Outcome{}, err
	}
	return next, out, nil
}
