package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/blackjack/internal/protocol"
)

func TestMessagePool_GetPut(t *testing.T) {
	t.Parallel()

	msg := GetMessage()
	assert.NotNil(t, msg)

	msg.Type = protocol.MsgHit
	msg.Payload = []byte(`{"hand":0}`)
	PutMessage(msg)

	// Get again - should be reset
	msg2 := GetMessage()
	assert.NotNil(t, msg2)
	assert.Empty(t, msg2.Type)
	assert.Nil(t, msg2.Payload)
}

func TestPool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutMessage(nil)
		PutBuffer(nil)
	})
}

func TestBufferPool_GetPut(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	assert.NotNil(t, buf)

	buf.WriteString("test data")
	assert.Equal(t, 9, buf.Len())
	PutBuffer(buf)

	buf2 := GetBuffer()
	assert.Equal(t, 0, buf2.Len())
}

func TestDetach_SurvivesBufferReuse(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	buf.WriteString("hello")
	out := detach(buf)
	PutBuffer(buf)

	buf2 := GetBuffer()
	buf2.WriteString("XXXXX")
	assert.Equal(t, "hello", string(out))
	PutBuffer(buf2)
}

func TestPool_Concurrency(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			msg := GetMessage()
			msg.Type = protocol.MsgStand
			PutMessage(msg)

			buf := GetBuffer()
			buf.WriteString("concurrent test")
			PutBuffer(buf)
		})
	}
	wg.Wait()
}

func BenchmarkEncode(b *testing.B) {
	msg := MustNewMessage(protocol.MsgGameState, protocol.GameStatePayload{
		PlayerHands: []protocol.HandInfo{{Cards: []string{"A of Spades", "K of Hearts"}, Value: 21}},
		Chips:       1000,
	})
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = Encode(msg)
		}
	})
}

func TestDecode_RecycledMessageDoesNotAlias(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
	}{
		{"json", FormatJSON},
		{"binary", FormatBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			first, err := Marshal(MustNewMessage(protocol.MsgDeal, protocol.DealPayload{Hand: 1}), tt.format)
			require.NoError(t, err)
			second, err := Marshal(&protocol.Message{Type: protocol.MsgStand}, tt.format)
			require.NoError(t, err)

			msg, err := Unmarshal(first, tt.format)
			require.NoError(t, err)
			payload, err := ParsePayload[protocol.DealPayload](msg)
			require.NoError(t, err)
			kept := string(msg.Payload)
			PutMessage(msg)

			next, err := Unmarshal(second, tt.format)
			require.NoError(t, err)
			defer PutMessage(next)

			assert.Equal(t, protocol.MsgStand, next.Type)
			assert.Equal(t, 1, payload.Hand)
			assert.Contains(t, kept, `"hand":1`)
			if tt.format == FormatBinary {
				assert.Empty(t, next.Payload)
			}
		})
	}
}
