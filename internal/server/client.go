package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/game/room"
	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/protocol/codec"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 4096

	// 发送缓冲区大小
	sendBufferSize = 256
)

// frame 待发送的一帧
type frame struct {
	messageType int
	data        []byte
}

// Client 代表一个 WebSocket 连接
type Client struct {
	ID   string // 连接唯一 ID（即 channel_name）
	Room string // 所在房间
	IP   string // 客户端 IP 地址

	server *Server
	room   *room.Room
	conn   *websocket.Conn
	send   chan frame
	format atomic.Int32 // 最近一次收到的帧格式，回复沿用
	logger *log.Logger

	mu     sync.RWMutex
	closed bool
}

// NewClient 创建新客户端
func NewClient(s *Server, conn *websocket.Conn, r *room.Room) *Client {
	id := uuid.NewString()
	return &Client{
		ID:     id,
		Room:   r.Name(),
		server: s,
		room:   r,
		conn:   conn,
		send:   make(chan frame, sendBufferSize),
		logger: s.logger.With("client", id, "room", r.Name()),
	}
}

// GetID 连接 ID
func (c *Client) GetID() string { return c.ID }

// GetRoom 所在房间
func (c *Client) GetRoom() string { return c.Room }

// Format 当前回复使用的帧格式
func (c *Client) Format() codec.Format {
	return codec.Format(c.format.Load())
}

// ReadPump 从 WebSocket 读取消息
func (c *Client) ReadPump() {
	defer func() {
		c.handleDisconnect()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read error", "err", err)
			}
			break
		}

		format := codec.FormatJSON
		if messageType == websocket.BinaryMessage {
			format = codec.FormatBinary
		}
		c.format.Store(int32(format))

		msg, err := codec.Unmarshal(data, format)
		if err != nil {
			c.logger.Debug("malformed message", "format", format, "err", err)
			c.SendMessage(codec.NewErrorFromErr(apperrors.ErrMalformedMessage))
			continue
		}

		// 交给处理器处理，处理器不持有消息
		c.server.handler.Handle(c, msg)
		codec.PutMessage(msg)
	}
}

// WritePump 向 WebSocket 写入消息
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case f, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(f.messageType, f.data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息给客户端，编码沿用最近一次收到的帧格式
func (c *Client) SendMessage(msg *protocol.Message) {
	format := c.Format()
	data, err := codec.Marshal(msg, format)
	if err != nil {
		c.logger.Error("encode message failed", "type", msg.Type, "err", err)
		return
	}

	messageType := websocket.TextMessage
	if format == codec.FormatBinary {
		messageType = websocket.BinaryMessage
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}

	select {
	case c.send <- frame{messageType: messageType, data: data}:
	default:
		// 发送缓冲区已满，断开慢连接
		c.logger.Warn("send buffer full, dropping connection")
		go c.Close()
	}
}

// handleDisconnect 处理断开连接
func (c *Client) handleDisconnect() {
	c.room.Disconnect(c)
	c.server.unregisterClient(c)
	c.Close()
}

// Close 关闭客户端连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
