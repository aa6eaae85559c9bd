package bot

import (
	"errors"

	"scoundrel/internal/domain"
)

// ErrNoMove is returned when the snapshot offers nothing to do, e.g. the run is over.
var ErrNoMove = errors.New("no move available")

// Brain is the interface that all autoplay strategies must implement.
type Brain interface {
	// NextAction picks the player's next action from a read-only snapshot.
	NextAction(snap domain.Snapshot) (domain.Action, error)
}
