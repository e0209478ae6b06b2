package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDealerShouldHit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []string
		expected bool
	}{
		{name: "Soft 16", cards: []string{"A of Spades", "5 of Hearts"}, expected: true},
		{name: "Hard 12", cards: []string{"10 of Spades", "2 of Hearts"}, expected: true},
		{name: "Ace first soft 17", cards: []string{"A of Spades", "6 of Hearts"}, expected: true},
		{name: "Ace second soft 17", cards: []string{"6 of Hearts", "A of Spades"}, expected: true},
		{name: "Hard 17 no ace", cards: []string{"K of Spades", "7 of Hearts"}, expected: false},
		{name: "Three card 17 ace first weak second", cards: []string{"A of Spades", "2 of Hearts", "4 of Clubs"}, expected: true},
		{name: "Three card 17 ace first strong second", cards: []string{"A of Spades", "A of Hearts", "5 of Clubs"}, expected: false},
		{name: "Three card 17 ace second weak first", cards: []string{"3 of Spades", "A of Hearts", "3 of Clubs"}, expected: true},
		{name: "Three card 17 ace third", cards: []string{"3 of Spades", "3 of Hearts", "A of Clubs"}, expected: false},
		{name: "Hard 17 with reduced ace", cards: []string{"10 of Spades", "6 of Hearts", "A of Clubs"}, expected: false},
		{name: "19", cards: []string{"10 of Spades", "9 of Hearts"}, expected: false},
		{name: "Blackjack", cards: []string{"A of Spades", "K of Hearts"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, DealerShouldHit(hand(tt.cards...)))
		})
	}
}
