package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPower(t *testing.T) {
	tests := []struct {
		rank string
		want int
	}{
		{rank: "2", want: 2},
		{rank: "7", want: 7},
		{rank: "10", want: 10},
		{rank: "J", want: 11},
		{rank: "Q", want: 12},
		{rank: "K", want: 13},
		{rank: "A", want: 14},
	}
	for _, tt := range tests {
		t.Run(tt.rank, func(t *testing.T) {
			c, err := ParseCard("spades", tt.rank)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Power(c))
			assert.Equal(t, tt.rank, c.Rank.String())
		})
	}
}

func TestNewCard_Invalid(t *testing.T) {
	tests := []struct {
		name string
		suit Suit
		rank Rank
	}{
		{name: "unknown suit", suit: "stars", rank: 5},
		{name: "rank too low", suit: SuitClubs, rank: 1},
		{name: "rank too high", suit: SuitSpades, rank: 15},
		{name: "face potion", suit: SuitHearts, rank: RankJack},
		{name: "ace weapon", suit: SuitDiamonds, rank: RankAce},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCard(tt.suit, tt.rank)
			assert.ErrorIs(t, err, ErrInvalidCard)
		})
	}
}

func TestParseCard_Invalid(t *testing.T) {
	for _, rank := range []string{"", "1", "11", "X", "k"} {
		_, err := ParseCard("clubs", rank)
		assert.ErrorIs(t, err, ErrInvalidCard, "rank %q", rank)
	}
}

func TestCardKind(t *testing.T) {
	assert.Equal(t, KindMonster, Card{SuitClubs, 3}.Kind())
	assert.Equal(t, KindMonster, Card{SuitSpades, RankAce}.Kind())
	assert.Equal(t, KindPotion, Card{SuitHearts, 3}.Kind())
	assert.Equal(t, KindWeapon, Card{SuitDiamonds, 3}.Kind())
	assert.True(t, Card{SuitSpades, 2}.IsMonster())
	assert.False(t, Card{SuitHearts, 2}.IsMonster())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "10♥", Card{SuitHearts, 10}.String())
	assert.Equal(t, "Q♠", Card{SuitSpades, RankQueen}.String())
}
