package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/blackjack/internal/protocol"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short name within limit", "Alice", 10, "Alice"},
		{"exact length", "HelloWorld", 10, "HelloWorld"},
		{"long name truncated", "VeryLongPlayerName", 10, "VeryLongP…"},
		{"chinese name truncated", "可爱的龙猫", 4, "可爱的…"},
		{"empty name", "", 10, ""},
		{"single char limit", "Hello", 1, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxLen))
		})
	}
}

func TestRenderCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"ace of spades", "A of Spades", "A♠"},
		{"ten of hearts", "10 of Hearts", "10♥"},
		{"king of diamonds", "K of Diamonds", "K♦"},
		{"unknown card kept", "Joker", "Joker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, RenderCard(tt.input), tt.contains)
		})
	}
}

func TestRenderHand(t *testing.T) {
	t.Parallel()

	t.Run("empty hand", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, RenderHand(protocol.HandInfo{}), "no cards")
	})

	t.Run("blackjack", func(t *testing.T) {
		t.Parallel()
		out := RenderHand(protocol.HandInfo{
			Cards:     []string{"A of Spades", "K of Hearts"},
			Value:     21,
			Blackjack: true,
			Stake:     50,
		})
		assert.Contains(t, out, "A♠")
		assert.Contains(t, out, "(21)")
		assert.Contains(t, out, "BLACKJACK")
		assert.Contains(t, out, "bet $50")
	})

	t.Run("soft total", func(t *testing.T) {
		t.Parallel()
		out := RenderHand(protocol.HandInfo{
			Cards: []string{"A of Spades", "6 of Hearts"},
			Value: 17,
			Soft:  true,
		})
		assert.Contains(t, out, "(17) soft")
	})

	t.Run("bust", func(t *testing.T) {
		t.Parallel()
		out := RenderHand(protocol.HandInfo{
			Cards:  []string{"K of Spades", "Q of Hearts", "5 of Clubs"},
			Value:  25,
			Busted: true,
		})
		assert.Contains(t, out, "BUST")
		assert.NotContains(t, out, "bet")
	})
}
