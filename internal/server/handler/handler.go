package handler

import (
	"github.com/charmbracelet/log"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/game/room"
	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/protocol/codec"
	"github.com/palemoky/blackjack/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	RoomManager   *room.RoomManager
	StartingChips int // join 未带筹码时的默认值
	Logger        *log.Logger
}

// Handler 消息处理器
type Handler struct {
	roomManager   *room.RoomManager
	startingChips int
	logger        *log.Logger
	handlers      map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	l := deps.Logger
	if l == nil {
		l = log.Default()
	}
	h := &Handler{
		roomManager:   deps.RoomManager,
		startingChips: deps.StartingChips,
		logger:        l.WithPrefix("handler"),
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		protocol.MsgJoin: h.handleJoin,
		protocol.MsgDeal: h.handleDeal,

		// 牌局内操作
		protocol.MsgHit:    h.handleHandAction,
		protocol.MsgStand:  h.handleHandAction,
		protocol.MsgSplit:  h.handleHandAction,
		protocol.MsgDouble: h.handleHandAction,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	h.logger.Warn("unknown message type", "type", msg.Type, "client", client.GetID(), "room", client.GetRoom(), "payload_bytes", len(msg.Payload))
	client.SendMessage(codec.NewErrorFromErr(apperrors.ErrInvalidAction))
}

// submit 把校验过的指令投递给连接所在的房间
func (h *Handler) submit(client types.ClientInterface, action room.Action) {
	if h.roomManager == nil {
		client.SendMessage(codec.NewErrorFromErr(apperrors.ErrServerClosed))
		return
	}

	r := h.roomManager.GetRoom(client.GetRoom())
	if r == nil {
		client.SendMessage(codec.NewErrorFromErr(apperrors.ErrInvalidRoom))
		return
	}
	if !r.Submit(client, action) {
		client.SendMessage(codec.NewErrorFromErr(apperrors.ErrServerClosed))
	}
}
