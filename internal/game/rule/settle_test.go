package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	t.Parallel()

	blackjack := []string{"A of Spades", "K of Hearts"}
	twenty := []string{"K of Spades", "Q of Hearts"}
	nineteen := []string{"K of Clubs", "9 of Hearts"}
	threeCard21 := []string{"7 of Spades", "7 of Hearts", "7 of Clubs"}
	bust := []string{"K of Spades", "Q of Hearts", "5 of Clubs"}

	tests := []struct {
		name     string
		player   []string
		dealer   []string
		expected Outcome
		payout   int
	}{
		{name: "Player blackjack", player: blackjack, dealer: twenty, expected: OutcomePlayerBlackjack, payout: 250},
		{name: "Blackjack beats three card 21", player: blackjack, dealer: threeCard21, expected: OutcomePlayerBlackjack, payout: 250},
		{name: "Dealer blackjack", player: twenty, dealer: blackjack, expected: OutcomeDealerBlackjack, payout: 0},
		{name: "Three card 21 loses to blackjack", player: threeCard21, dealer: blackjack, expected: OutcomeDealerBlackjack, payout: 0},
		{name: "Both blackjack", player: blackjack, dealer: blackjack, expected: OutcomeBlackjackPush, payout: 100},
		{name: "Player bust", player: bust, dealer: bust, expected: OutcomePlayerBust, payout: 0},
		{name: "Dealer bust", player: nineteen, dealer: bust, expected: OutcomeDealerBust, payout: 200},
		{name: "Push", player: twenty, dealer: twenty, expected: OutcomePush, payout: 100},
		{name: "Higher wins", player: twenty, dealer: nineteen, expected: OutcomePlayerWin, payout: 200},
		{name: "Lower loses", player: nineteen, dealer: twenty, expected: OutcomePlayerLoss, payout: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			outcome := Settle(hand(tt.player...), hand(tt.dealer...))
			assert.Equal(t, tt.expected, outcome)
			assert.Equal(t, tt.payout, outcome.Payout(100))
		})
	}
}

func TestOutcomePayout_OddStakeRoundsDown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, OutcomePlayerBlackjack.Payout(3))
	assert.Equal(t, 0, OutcomePlayerLoss.Payout(3))
}

func TestOutcomeFlags(t *testing.T) {
	t.Parallel()

	assert.True(t, OutcomeDealerBust.IsWin())
	assert.False(t, OutcomePush.IsWin())
	assert.True(t, OutcomeBlackjackPush.IsPush())
	assert.Equal(t, "dealer_blackjack", OutcomeDealerBlackjack.String())
}
