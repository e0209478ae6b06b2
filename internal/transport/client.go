// Package transport is the client side of the table websocket connection.
package transport

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// ErrClosed 连接已关闭
var ErrClosed = errors.New("connection closed")

// Client WebSocket 客户端
type Client struct {
	ServerURL string
	Format    codec.Format // 发送帧格式，服务端按此格式回复

	conn    *websocket.Conn
	send    chan []byte
	receive chan *protocol.Message
	done    chan struct{}

	// 由 connection_good 填充
	ConnID string
	Room   string

	// 回调
	OnMessage func(*protocol.Message) // 消息回调
	OnError   func(error)             // 错误回调
	OnClose   func()                  // 关闭回调

	mu     sync.RWMutex
	closed bool
}

// NewClient 创建客户端
func NewClient(serverURL string, format codec.Format) *Client {
	return &Client{
		ServerURL: serverURL,
		Format:    format,
		send:      make(chan []byte, 256),
		receive:   make(chan *protocol.Message, 256),
		done:      make(chan struct{}),
	}
}

// Connect 连接服务器
func (c *Client) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.Dial(c.ServerURL, nil)
	if err != nil {
		return err
	}

	c.conn = conn

	go c.readPump()
	go c.writePump()

	return nil
}

// SendMessage 发送消息
func (c *Client) SendMessage(msg *protocol.Message) error {
	data, err := codec.Marshal(msg, c.Format)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// Send 构造并发送消息
func (c *Client) Send(msgType protocol.MessageType, payload any) error {
	msg, err := codec.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// Receive 接收消息的 channel
func (c *Client) Receive() <-chan *protocol.Message {
	return c.receive
}

// Done 连接关闭时关闭
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close 关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// IsClosed 是否已关闭
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
