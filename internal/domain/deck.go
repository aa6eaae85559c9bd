package domain

import (
	"math/rand"
)

// DeckSize is the number of cards in a dungeon: 13 clubs, 13 spades,
// and the nine pip cards of hearts and diamonds.
const DeckSize = 44

// NewDeck returns the dungeon deck in suit-major, rank-minor order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := RankTwo; r <= RankAce; r++ {
			c, err := NewCard(s, r)
			if err != nil {
				continue
			}
			deck = append(deck, c)
		}
	}
	return deck
}

// Shuffle returns a uniformly shuffled copy of items using Fisher-Yates.
// The input slice is left untouched.
func Shuffle[T any](items []T, rng *rand.Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RemoveCard removes the first occurrence of card from cards and reports whether it was found.
func RemoveCard(cards []Card, card Card) ([]Card, bool) {
	for i, c := range cards {
		if c == card {
			out := make([]Card, 0, len(cards)-1)
			out = append(out, cards[:i]...)
			return append(out, cards[i+1:]...), true
		}
	}
	return cards, false
}

// ContainsCard reports whether card is present in cards.
func ContainsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}
