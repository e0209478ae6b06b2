package rule

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/game/card"
)

func hand(specs ...string) *Hand {
	return NewHand(card.MustParse(specs...)...)
}

func TestHandValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []string
		expected int
		soft     bool
	}{
		{name: "Empty", cards: nil, expected: 0},
		{name: "Faces", cards: []string{"K of Spades", "Q of Hearts"}, expected: 20},
		{name: "Soft 17", cards: []string{"A of Spades", "6 of Hearts"}, expected: 17, soft: true},
		{name: "Ace reduced", cards: []string{"A of Spades", "6 of Hearts", "5 of Clubs"}, expected: 12},
		{name: "Two aces", cards: []string{"A of Spades", "A of Hearts"}, expected: 12, soft: true},
		{name: "Three aces and nine", cards: []string{"A of Spades", "A of Hearts", "A of Clubs", "9 of Clubs"}, expected: 12},
		{name: "Hard bust", cards: []string{"K of Spades", "Q of Hearts", "5 of Clubs"}, expected: 25},
		{name: "Ace cannot save bust", cards: []string{"A of Spades", "K of Hearts", "Q of Clubs", "5 of Clubs"}, expected: 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := hand(tt.cards...)
			assert.Equal(t, tt.expected, h.Value())
			assert.Equal(t, tt.soft, h.IsSoft())
			assert.Equal(t, tt.expected > 21, h.IsBust())
		})
	}
}

func TestHandValue_OrderIndependent(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 99))
	for range 200 {
		shoe := card.NewShoe(1, rng)
		n := 2 + rng.IntN(5)
		cards := make([]card.Card, 0, n)
		for range n {
			c, err := shoe.Deal()
			require.NoError(t, err)
			cards = append(cards, c)
		}

		forward := NewHand(cards...)
		shuffled := make([]card.Card, len(cards))
		copy(shuffled, cards)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		assert.Equal(t, forward.Value(), NewHand(shuffled...).Value(), "cards %v", cards)
	}
}

func TestHandValue_RecomputedAfterAdd(t *testing.T) {
	t.Parallel()

	h := hand("A of Spades", "6 of Hearts")
	assert.Equal(t, 17, h.Value())

	h.Add(card.Card{Suit: card.Clubs, Rank: card.Rank5})
	assert.Equal(t, 12, h.Value())
}

func TestHandIsBlackjack(t *testing.T) {
	t.Parallel()

	assert.True(t, hand("A of Spades", "K of Hearts").IsBlackjack())
	assert.True(t, hand("10 of Spades", "A of Hearts").IsBlackjack())
	assert.False(t, hand("7 of Spades", "7 of Hearts", "7 of Clubs").IsBlackjack())
	assert.False(t, hand("A of Spades", "9 of Hearts").IsBlackjack())
	assert.False(t, hand("A of Spades").IsBlackjack())
}

func TestHandIsSplitable(t *testing.T) {
	t.Parallel()

	assert.True(t, hand("8 of Spades", "8 of Hearts").IsSplitable())
	assert.True(t, hand("A of Spades", "A of Hearts").IsSplitable())
	// 同为 10 点但点数不同
	assert.False(t, hand("K of Spades", "Q of Hearts").IsSplitable())
	assert.False(t, hand("8 of Spades", "8 of Hearts", "2 of Clubs").IsSplitable())
	assert.False(t, hand("8 of Spades").IsSplitable())
}

func TestHandSplit(t *testing.T) {
	t.Parallel()

	h := hand("8 of Spades", "8 of Hearts")
	shoe := card.NewShoeFromCards(card.MustParse("3 of Clubs", "K of Diamonds", "2 of Spades")...)

	next, err := h.Split(shoe)
	require.NoError(t, err)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 2, next.Len())
	assert.Equal(t, "8 of Spades, 3 of Clubs", h.String())
	assert.Equal(t, "8 of Hearts, K of Diamonds", next.String())
	assert.Equal(t, 1, shoe.Remaining())
}

func TestHandSplit_NotSplitable(t *testing.T) {
	t.Parallel()

	h := hand("8 of Spades", "9 of Hearts")
	shoe := card.NewShoeFromCards(card.MustParse("3 of Clubs", "K of Diamonds")...)

	next, err := h.Split(shoe)
	assert.ErrorIs(t, err, apperrors.ErrNotSplitable)
	assert.Nil(t, next)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 2, shoe.Remaining())
}

func TestHandSplit_ShoeTooShort(t *testing.T) {
	t.Parallel()

	h := hand("8 of Spades", "8 of Hearts")
	shoe := card.NewShoeFromCards(card.MustParse("3 of Clubs")...)

	_, err := h.Split(shoe)
	assert.ErrorIs(t, err, card.ErrShoeExhausted)
	assert.Equal(t, "8 of Spades, 8 of Hearts", h.String())
	assert.Equal(t, 1, shoe.Remaining())
}

func TestHandClear(t *testing.T) {
	t.Parallel()

	h := hand("8 of Spades", "8 of Hearts")
	h.Stake = 50
	h.Done = true

	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 0, h.Stake)
	assert.False(t, h.Done)
}
