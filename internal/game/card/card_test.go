package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rank     Rank
		expected int
	}{
		{Rank2, 2},
		{Rank9, 9},
		{Rank10, 10},
		{RankJ, 10},
		{RankQ, 10},
		{RankK, 10},
		{RankA, 11},
	}

	for _, tt := range tests {
		t.Run(tt.rank.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.rank.Value())
			assert.Equal(t, tt.expected, Card{Suit: Clubs, Rank: tt.rank}.Value())
		})
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A of Spades", Card{Suit: Spades, Rank: RankA}.String())
	assert.Equal(t, "10 of Hearts", Card{Suit: Hearts, Rank: Rank10}.String())
	assert.Equal(t, "Q♦", Card{Suit: Diamonds, Rank: RankQ}.Short())
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Card
		hasError bool
	}{
		{name: "Ace", input: "A of Spades", expected: Card{Suit: Spades, Rank: RankA}},
		{name: "Ten", input: "10 of Hearts", expected: Card{Suit: Hearts, Rank: Rank10}},
		{name: "Lower case suit", input: "K of clubs", expected: Card{Suit: Clubs, Rank: RankK}},
		{name: "Missing separator", input: "A Spades", hasError: true},
		{name: "Bad rank", input: "1 of Spades", hasError: true},
		{name: "Bad suit", input: "A of Stars", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := ParseCard(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
			assert.Equal(t, c, MustParse(c.String())[0])
		})
	}
}

func TestSuitIsRed(t *testing.T) {
	t.Parallel()

	assert.True(t, Hearts.IsRed())
	assert.True(t, Diamonds.IsRed())
	assert.False(t, Clubs.IsRed())
	assert.False(t, Spades.IsRed())
}
