package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/protocol/codec"
)

// newEchoServer 连接后先发 connection_good，之后按收到的帧类型原样回显
func newEchoServer(t *testing.T) *httptest.Server {
	return newTestServer(t, false)
}

// newTestServer hangup 为 true 时发完 connection_good 立即断开
func newTestServer(t *testing.T, hangup bool) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		hello, _ := codec.Encode(codec.MustNewMessage(protocol.MsgConnectionGood, protocol.ConnectionGoodPayload{
			Message:     "You are now connected to room lobby",
			ChannelName: "conn-42",
			Room:        "lobby",
		}))
		if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil || hangup {
			return
		}

		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/lobby"
}

func receive(t *testing.T, c *Client) *protocol.Message {
	t.Helper()
	select {
	case msg := <-c.Receive():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestClient_ConnectionGood(t *testing.T) {
	t.Parallel()

	srv := newEchoServer(t)
	c := NewClient(wsURL(srv), codec.FormatJSON)
	require.NoError(t, c.Connect())
	defer c.Close()

	msg := receive(t, c)
	assert.Equal(t, protocol.MsgConnectionGood, msg.Type)

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.Equal(t, "conn-42", c.ConnID)
	assert.Equal(t, "lobby", c.Room)
}

func TestClient_SendRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format codec.Format
	}{
		{"json text frames", codec.FormatJSON},
		{"binary frames", codec.FormatBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newEchoServer(t)
			c := NewClient(wsURL(srv), tt.format)
			require.NoError(t, c.Connect())
			defer c.Close()

			_ = receive(t, c) // connection_good

			bet := 25
			require.NoError(t, c.Send(protocol.MsgDeal, protocol.DealPayload{Bet: &bet, Hand: 0}))

			msg := receive(t, c)
			assert.Equal(t, protocol.MsgDeal, msg.Type)
			payload, err := codec.ParsePayload[protocol.DealPayload](msg)
			require.NoError(t, err)
			require.NotNil(t, payload.Bet)
			assert.Equal(t, 25, *payload.Bet)
		})
	}
}

func TestClient_OnMessageCallback(t *testing.T) {
	t.Parallel()

	srv := newEchoServer(t)
	c := NewClient(wsURL(srv), codec.FormatJSON)

	seen := make(chan protocol.MessageType, 4)
	c.OnMessage = func(msg *protocol.Message) { seen <- msg.Type }
	require.NoError(t, c.Connect())
	defer c.Close()

	_ = receive(t, c)
	select {
	case mt := <-seen:
		assert.Equal(t, protocol.MsgConnectionGood, mt)
	case <-time.After(2 * time.Second):
		t.Fatal("OnMessage not called")
	}
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	srv := newEchoServer(t)
	c := NewClient(wsURL(srv), codec.FormatJSON)
	require.NoError(t, c.Connect())

	c.Close()
	c.Close()

	assert.True(t, c.IsClosed())
	assert.ErrorIs(t, c.Send(protocol.MsgStand, protocol.HandActionPayload{}), ErrClosed)
	select {
	case <-c.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestClient_ServerCloseTriggersOnClose(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, true)
	c := NewClient(wsURL(srv), codec.FormatJSON)

	closed := make(chan struct{})
	c.OnClose = func() { close(closed) }
	require.NoError(t, c.Connect())
	_ = receive(t, c)

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("OnClose not called")
	}
	assert.True(t, c.IsClosed())
}

func TestClient_ConnectFails(t *testing.T) {
	t.Parallel()

	c := NewClient("ws://127.0.0.1:1/ws/lobby", codec.FormatJSON)
	assert.Error(t, c.Connect())
}
