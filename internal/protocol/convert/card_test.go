package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/blackjack/internal/game/card"
	"github.com/palemoky/blackjack/internal/game/rule"
)

func TestHandRoundTrip(t *testing.T) {
	t.Parallel()

	original := rule.NewHand(card.MustParse("A of Spades", "K of Hearts")...)
	original.Stake = 100
	original.Done = true

	info := HandToInfo(original)
	assert.Equal(t, []string{"A of Spades", "K of Hearts"}, info.Cards)
	assert.Equal(t, 21, info.Value)
	assert.True(t, info.Blackjack)
	assert.False(t, info.Busted)

	result, err := InfoToHand(info)
	require.NoError(t, err)
	assert.Equal(t, original.Cards, result.Cards)
	assert.Equal(t, 100, result.Stake)
	assert.True(t, result.Done)
}

func TestHandsToInfos(t *testing.T) {
	t.Parallel()

	hands := []*rule.Hand{
		rule.NewHand(card.MustParse("8 of Spades", "3 of Clubs")...),
		rule.NewHand(card.MustParse("8 of Hearts", "K of Clubs", "5 of Clubs")...),
	}

	infos := HandsToInfos(hands)
	require.Len(t, infos, 2)
	assert.Equal(t, 11, infos[0].Value)
	assert.False(t, infos[0].Soft)
	assert.True(t, infos[1].Busted)

	assert.Equal(t, [][]string{
		{"8 of Spades", "3 of Clubs"},
		{"8 of Hearts", "K of Clubs", "5 of Clubs"},
	}, HandsToCards(hands))
}

func TestDealerUpInfo(t *testing.T) {
	t.Parallel()

	info := DealerUpInfo(rule.NewHand(card.MustParse("A of Clubs", "K of Hearts")...))
	assert.Equal(t, []string{"A of Clubs"}, info.Cards)
	assert.Equal(t, 11, info.Value)
	assert.False(t, info.Blackjack, "hole card must stay hidden")

	empty := DealerUpInfo(rule.NewHand())
	assert.Empty(t, empty.Cards)
}

func TestStringsToCards_Invalid(t *testing.T) {
	t.Parallel()

	_, err := StringsToCards([]string{"A of Spades", "Joker"})
	assert.Error(t, err)
}

func TestHandToInfo_Soft(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards []string
		soft  bool
		value int
	}{
		{"ace six", []string{"A of Spades", "6 of Hearts"}, true, 17},
		{"ace reduced", []string{"A of Spades", "6 of Hearts", "K of Clubs"}, false, 17},
		{"two aces", []string{"A of Spades", "A of Hearts"}, true, 12},
		{"no ace", []string{"10 of Spades", "7 of Hearts"}, false, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := HandToInfo(rule.NewHand(card.MustParse(tt.cards...)...))
			assert.Equal(t, tt.soft, info.Soft)
			assert.Equal(t, tt.value, info.Value)
		})
	}
}
