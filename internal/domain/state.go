package domain

import (
	"errors"
	"fmt"
)

// Phase represents where a game stands between player actions.
type Phase string

const (
	// PhaseIdle means no opponent is pending; any hand card may be played.
	PhaseIdle Phase = "idle"
	// PhaseAwaitingFight means a monster was played and waits for a fight decision.
	PhaseAwaitingFight Phase = "awaiting_fight"
	// PhaseOver means the game ended; only a restart is accepted.
	PhaseOver Phase = "over"
)

var (
	ErrInvalidCard   = errors.New("invalid card")
	ErrInvalidAction = errors.New("invalid action")

	ErrGameOver        = fmt.Errorf("%w: game is over", ErrInvalidAction)
	ErrFightPending    = fmt.Errorf("%w: a fight is pending", ErrInvalidAction)
	ErrNoFightPending  = fmt.Errorf("%w: no opponent to fight", ErrInvalidAction)
	ErrAlreadySkipped  = fmt.Errorf("%w: room cannot be skipped", ErrInvalidAction)
	ErrCardNotInHand   = fmt.Errorf("%w: card is not in hand", ErrInvalidAction)
	ErrWeaponUnusable  = fmt.Errorf("%w: weapon cannot be used", ErrInvalidAction)
	ErrAlreadyDrawn    = fmt.Errorf("%w: room already drawn", ErrInvalidAction)
	ErrUnknownAction   = fmt.Errorf("%w: unknown action", ErrInvalidAction)
	ErrRandomSourceNil = fmt.Errorf("%w: restart needs a random source", ErrInvalidAction)
)

// Rules holds the tunable constants of a dungeon.
type Rules struct {
	StartingLife int
	MaxLife      int
	// ScoreOffset is the starting score. The default is minus the summed power
	// of every monster, so clearing the dungeon brings the score to zero.
	ScoreOffset int
	RoomSize    int
	RefillSize  int
}

// DefaultRules returns the standard dungeon rules.
func DefaultRules() Rules {
	return Rules{
		StartingLife: 20,
		MaxLife:      20,
		ScoreOffset:  -208,
		RoomSize:     4,
		RefillSize:   3,
	}
}

// Validate rejects rule sets that cannot produce a playable game.
func (r Rules) Validate() error {
	switch {
	case r.MaxLife <= 0:
		return fmt.Errorf("max life must be positive, got %d", r.MaxLife)
	case r.StartingLife <= 0 || r.StartingLife > r.MaxLife:
		return fmt.Errorf("starting life must be in 1..%d, got %d", r.MaxLife, r.StartingLife)
	case r.RoomSize < 2:
		return fmt.Errorf("room size must be at least 2, got %d", r.RoomSize)
	case r.RefillSize < 1 || r.RefillSize >= r.RoomSize:
		return fmt.Errorf("refill size must be in 1..%d, got %d", r.RoomSize-1, r.RefillSize)
	}
	return nil
}

// refillAt is the hand size, counted before a card leaves it, that triggers the next room.
func (r Rules) refillAt() int {
	return r.RoomSize - r.RefillSize + 1
}

// Game is the full state of one dungeon run.
type Game struct {
	Rules Rules

	Deck    []Card // draw pile, front is the top
	Hand    []Card // current room
	Discard []Card // every consumed card

	Life     int
	Weapon   *Weapon
	Opponent *Card // monster waiting for a fight decision

	Skipped bool // room committed or skipped; skipping is disallowed
	Healed  bool // a potion already healed this room
	Score   int
	Over    bool
}

// Phase derives the current phase from the state flags.
func (g *Game) Phase() Phase {
	switch {
	case g.Over:
		return PhaseOver
	case g.Opponent != nil:
		return PhaseAwaitingFight
	default:
		return PhaseIdle
	}
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	out := *g
	out.Deck = append([]Card(nil), g.Deck...)
	out.Hand = append([]Card(nil), g.Hand...)
	out.Discard = append([]Card(nil), g.Discard...)
	out.Weapon = g.Weapon.clone()
	if g.Opponent != nil {
		opp := *g.Opponent
		out.Opponent = &opp
	}
	return &out
}

// WeaponView is the render-friendly form of the equipped weapon.
type WeaponView struct {
	Strength int
	Last     int
	LastSuit Suit
}

// Snapshot is a read-only copy of the game for rendering.
type Snapshot struct {
	Phase        Phase
	Deck         []Card
	Hand         []Card
	Discard      []Card
	Life         int
	MaxLife      int
	Weapon       *WeaponView
	Opponent     *Card
	WeaponUsable bool
	Skipped      bool
	Healed       bool
	Score        int
	Over         bool
}

// Snapshot copies the game state for the presentation layer.
func (g *Game) Snapshot() Snapshot {
	c := g.Clone()
	s := Snapshot{
		Phase:        g.Phase(),
		Deck:         c.Deck,
		Hand:         c.Hand,
		Discard:      c.Discard,
		Life:         g.Life,
		MaxLife:      g.Rules.MaxLife,
		Opponent:     c.Opponent,
		WeaponUsable: g.CanUseWeapon(),
		Skipped:      g.Skipped,
		Healed:       g.Healed,
		Score:        g.Score,
		Over:         g.Over,
	}
	if g.Weapon != nil {
		s.Weapon = &WeaponView{Strength: g.Weapon.Strength, Last: g.Weapon.Last()}
		if g.Weapon.Kill != nil {
			s.Weapon.LastSuit = g.Weapon.Kill.Suit
		}
	}
	return s
}
