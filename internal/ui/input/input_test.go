package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/ui/model"
)

func intPtr(n int) *int { return &n }

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		line        string
		currentHand int
		want        Command
		wantErr     bool
	}{
		{"join with chips", "join alice 500", 0, Command{protocol.MsgJoin, protocol.JoinPayload{Name: "alice", Chips: intPtr(500)}}, false},
		{"join default chips", "sit bob", 0, Command{protocol.MsgJoin, protocol.JoinPayload{Name: "bob"}}, false},
		{"join missing name", "join", 0, Command{}, true},
		{"join negative chips", "join bob -5", 0, Command{}, true},
		{"deal", "deal 50", 0, Command{protocol.MsgDeal, protocol.DealPayload{Bet: intPtr(50)}}, false},
		{"bet with dollar", "bet $25", 0, Command{protocol.MsgDeal, protocol.DealPayload{Bet: intPtr(25)}}, false},
		{"deal zero", "deal 0", 0, Command{protocol.MsgDeal, protocol.DealPayload{Bet: intPtr(0)}}, false},
		{"deal missing bet", "deal", 0, Command{}, true},
		{"deal not a number", "deal lots", 0, Command{}, true},
		{"hit current hand", "hit", 1, Command{protocol.MsgHit, protocol.HandActionPayload{Hand: 1}}, false},
		{"hit explicit hand", "HIT 2", 0, Command{protocol.MsgHit, protocol.HandActionPayload{Hand: 2}}, false},
		{"stand shortcut", "s", 0, Command{protocol.MsgStand, protocol.HandActionPayload{Hand: 0}}, false},
		{"split shortcut", "p", 0, Command{protocol.MsgSplit, protocol.HandActionPayload{Hand: 0}}, false},
		{"double shortcut", "d", 0, Command{protocol.MsgDouble, protocol.HandActionPayload{Hand: 0}}, false},
		{"no active hand defaults to zero", "stand", -1, Command{protocol.MsgStand, protocol.HandActionPayload{Hand: 0}}, false},
		{"bad hand index", "hit x", 0, Command{}, true},
		{"too many args", "hit 1 2", 0, Command{}, true},
		{"unknown command", "surrender", 0, Command{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.line, tt.currentHand)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	_, err := Parse("   ", 0)
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestHint(t *testing.T) {
	t.Parallel()

	table := model.NewTable()
	assert.Equal(t, "join NAME [CHIPS]", Hint(model.PhaseSpectating, table))
	assert.Equal(t, "deal BET", Hint(model.PhaseBetting, table))
	assert.NotContains(t, Hint(model.PhasePlaying, table), "split")

	table.Splitable = true
	assert.Contains(t, Hint(model.PhasePlaying, table), "split")
	assert.Empty(t, Hint(model.PhaseConnecting, table))
}
