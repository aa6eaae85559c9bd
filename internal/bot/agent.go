package bot

import (
	"fmt"

	"scoundrel/internal/domain"
)

// Agent drives a run on behalf of a player.
type Agent struct {
	ID       string
	Level    Level
	Strategy Brain
}

// NewAgent builds an agent with the brain for level.
func NewAgent(id string, level Level) (*Agent, error) {
	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: id, Level: level, Strategy: brain}, nil
}

// Play asks the agent to pick its next action for the given game.
func (a *Agent) Play(game *domain.Game) (domain.Action, error) {
	if game == nil {
		return domain.Action{}, fmt.Errorf("agent %s: game is nil", a.ID)
	}
	if game.Over {
		return domain.Action{}, ErrNoMove
	}
	return a.Strategy.NextAction(game.Snapshot())
}
