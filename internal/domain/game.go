package domain

import (
	"math/rand"
)

// Outcome describes the effect of a single resolved action.
type Outcome struct {
	Card       Card
	Kind       Kind
	Mode       FightMode
	Healed     int // life actually restored
	Damage     int // life actually lost
	ScoreDelta int
	Drawn      []Card
	Ended      bool
}

// NewGame builds and shuffles a fresh dungeon. No room is drawn yet.
func NewGame(rules Rules, rng *rand.Rand) *Game {
	g := &Game{Rules: rules}
	g.reset(rng)
	return g
}

func (g *Game) reset(rng *rand.Rand) {
	g.Deck = Shuffle(NewDeck(), rng)
	g.Hand = nil
	g.Discard = nil
	g.Life = g.Rules.StartingLife
	g.Weapon = nil
	g.Opponent = nil
	g.Skipped = false
	g.Healed = false
	g.Score = g.Rules.ScoreOffset
	g.Over = false
}

// Restart discards the current run, reshuffles a new dungeon and draws the first room.
func (g *Game) Restart(rng *rand.Rand) []Card {
	g.reset(rng)
	return g.Draw(g.Rules.RoomSize)
}

// Draw moves up to n cards from the top of the deck to the end of the hand.
// Fewer cards are drawn when the deck runs low.
func (g *Game) Draw(n int) []Card {
	n = min(max(n, 0), len(g.Deck))
	drawn := append([]Card(nil), g.Deck[:n]...)
	g.Hand = append(g.Hand, drawn...)
	g.Deck = g.Deck[n:]
	return drawn
}

// DrawInitial draws the first room of a game started with NewGame.
func (g *Game) DrawInitial() ([]Card, error) {
	if g.Over {
		return nil, ErrGameOver
	}
	if len(g.Hand) > 0 {
		return nil, ErrAlreadyDrawn
	}
	return g.Draw(g.Rules.RoomSize), nil
}

// Skip puts the whole room at the bottom of the deck and draws a new one.
// A room that was skipped or already acted upon cannot be skipped.
func (g *Game) Skip() ([]Card, error) {
	switch {
	case g.Over:
		return nil, ErrGameOver
	case g.Opponent != nil:
		return nil, ErrFightPending
	case g.Skipped:
		return nil, ErrAlreadySkipped
	}
	g.Deck = append(g.Deck, g.Hand...)
	g.Hand = nil
	drawn := g.Draw(g.Rules.RoomSize)
	g.Skipped = true
	g.Healed = false
	return drawn, nil
}

// CanUseWeapon reports whether the pending opponent may be fought with the equipped weapon.
func (g *Game) CanUseWeapon() bool {
	if g.Opponent == nil || g.Weapon == nil {
		return false
	}
	return g.Weapon.CanDefeat(*g.Opponent)
}

// PlayCard plays a card from the hand. Monsters become the pending opponent,
// potions heal and weapons are equipped immediately.
func (g *Game) PlayCard(card Card) (Outcome, error) {
	if g.Over {
		return Outcome{}, ErrGameOver
	}
	if g.Opponent != nil {
		return Outcome{}, ErrFightPending
	}
	if !ContainsCard(g.Hand, card) {
		return Outcome{}, ErrCardNotInHand
	}

	switch card.Kind() {
	case KindMonster:
		opp := card
		g.Opponent = &opp
		return Outcome{Card: card, Kind: KindMonster}, nil
	case KindPotion:
		return g.drinkPotion(card), nil
	default:
		return g.equipWeapon(card), nil
	}
}

func (g *Game) drinkPotion(card Card) Outcome {
	heal := 0
	if !g.Healed {
		heal = Power(card)
	}
	lifeBefore := g.Life
	g.Life = min(g.Life+heal, g.Rules.MaxLife)

	before := g.consume(card)
	g.Skipped = true
	g.Healed = true

	out := Outcome{Card: card, Kind: KindPotion, Healed: g.Life - lifeBefore}
	var exhausted bool
	out.Drawn, exhausted = g.settleRoom(before)
	if exhausted {
		out.ScoreDelta = lifeBefore + heal - g.Rules.MaxLife
		g.Score += out.ScoreDelta
	}
	out.Ended = g.Over
	return out
}

func (g *Game) equipWeapon(card Card) Outcome {
	// A replaced weapon's card is already in the discard.
	g.Weapon = NewWeapon(Power(card))

	before := g.consume(card)
	g.Skipped = true

	out := Outcome{Card: card, Kind: KindWeapon}
	out.Drawn, _ = g.settleRoom(before)
	out.Ended = g.Over
	return out
}

// Fight resolves the pending opponent. Monsters always add their power to the score.
func (g *Game) Fight(mode FightMode) (Outcome, error) {
	if g.Over {
		return Outcome{}, ErrGameOver
	}
	if g.Opponent == nil {
		return Outcome{}, ErrNoFightPending
	}
	if mode == FightWithWeapon && !g.CanUseWeapon() {
		return Outcome{}, ErrWeaponUnusable
	}

	opp := *g.Opponent
	power := Power(opp)
	damage := power
	if mode == FightWithWeapon {
		damage = g.Weapon.Strike(opp)
	}
	g.Score += power
	g.Life -= damage

	before := g.consume(opp)
	g.Opponent = nil
	if g.Life <= 0 {
		g.Over = true
	}
	g.Skipped = true

	out := Outcome{Card: opp, Kind: KindMonster, Mode: mode, Damage: damage, ScoreDelta: power}
	out.Drawn, _ = g.settleRoom(before)
	out.Ended = g.Over
	return out, nil
}

// CancelFight withdraws the pending opponent; the card stays in the hand.
func (g *Game) CancelFight() error {
	if g.Over {
		return ErrGameOver
	}
	if g.Opponent == nil {
		return ErrNoFightPending
	}
	g.Opponent = nil
	return nil
}

// consume moves card from the hand to the discard and returns the hand size before removal.
func (g *Game) consume(card Card) int {
	before := len(g.Hand)
	var ok bool
	if g.Hand, ok = RemoveCard(g.Hand, card); ok {
		g.Discard = append(g.Discard, card)
	}
	return before
}

// settleRoom applies the room transition once a card has left a hand that
// held before cards. It reports whether the last card of the dungeon was consumed.
func (g *Game) settleRoom(before int) ([]Card, bool) {
	switch {
	case before == g.Rules.refillAt():
		drawn := g.Draw(g.Rules.RefillSize)
		g.Skipped = false
		g.Healed = false
		return drawn, false
	case before == 1 && len(g.Deck) == 0:
		g.Over = true
		return nil, true
	}
	return nil, false
}
