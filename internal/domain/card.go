package domain

import (
	"fmt"
	"strconv"
)

// Suit identifies one of the four French suits.
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Suits lists every suit in deck-building order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Symbol returns the glyph used when printing a card.
func (s Suit) Symbol() string {
	switch s {
	case SuitHearts:
		return "♥"
	case SuitDiamonds:
		return "♦"
	case SuitClubs:
		return "♣"
	case SuitSpades:
		return "♠"
	default:
		return "?"
	}
}

// Valid reports whether s is one of the four known suits.
func (s Suit) Valid() bool {
	switch s {
	case SuitHearts, SuitDiamonds, SuitClubs, SuitSpades:
		return true
	}
	return false
}

// Rank is the numeric rank of a card: 2..10 literal, J=11, Q=12, K=13, A=14.
type Rank int

const (
	RankTwo   Rank = 2
	RankTen   Rank = 10
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

// String returns the printed label of the rank ("7", "J", "A").
func (r Rank) String() string {
	switch r {
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	default:
		return strconv.Itoa(int(r))
	}
}

// ParseRank converts a printed label back into a Rank.
func ParseRank(label string) (Rank, error) {
	switch label {
	case "J":
		return RankJack, nil
	case "Q":
		return RankQueen, nil
	case "K":
		return RankKing, nil
	case "A":
		return RankAce, nil
	}
	n, err := strconv.Atoi(label)
	if err != nil || Rank(n) < RankTwo || Rank(n) > RankTen {
		return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidCard, label)
	}
	return Rank(n), nil
}

// Kind is the role a card plays in the dungeon.
type Kind int

const (
	KindMonster Kind = iota
	KindPotion
	KindWeapon
)

func (k Kind) String() string {
	switch k {
	case KindMonster:
		return "monster"
	case KindPotion:
		return "potion"
	case KindWeapon:
		return "weapon"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Card is an immutable playing card. Its identity is the (Suit, Rank) pair.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard validates a (suit, rank) pair against the dungeon universe.
// Hearts and diamonds carry no face cards or aces.
func NewCard(suit Suit, rank Rank) (Card, error) {
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, suit)
	}
	if rank < RankTwo || rank > RankAce {
		return Card{}, fmt.Errorf("%w: rank %d out of range", ErrInvalidCard, rank)
	}
	if (suit == SuitHearts || suit == SuitDiamonds) && rank > RankTen {
		return Card{}, fmt.Errorf("%w: %s has no %s", ErrInvalidCard, suit, rank)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// ParseCard builds a card from its wire form, e.g. ("clubs", "K").
func ParseCard(suit, rank string) (Card, error) {
	r, err := ParseRank(rank)
	if err != nil {
		return Card{}, err
	}
	return NewCard(Suit(suit), r)
}

// Kind classifies the card by suit.
func (c Card) Kind() Kind {
	switch c.Suit {
	case SuitHearts:
		return KindPotion
	case SuitDiamonds:
		return KindWeapon
	default:
		return KindMonster
	}
}

// IsMonster reports whether the card is a club or a spade.
func (c Card) IsMonster() bool {
	return c.Kind() == KindMonster
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Power maps a card to its numeric strength. It is the damage of a monster,
// the healing of a potion and the strength of a weapon.
func Power(c Card) int {
	return int(c.Rank)
}
