package handler

import (
	"strings"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/game/room"
	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/protocol/codec"
	"github.com/palemoky/blackjack/internal/types"
)

// maxNameLength 玩家名最大长度（按字符）
const maxNameLength = 32

// handleJoin 处理入座
//
// 空名字与负筹码交给牌局判定：已入座的连接重复入座一律静默忽略。
func (h *Handler) handleJoin(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.JoinPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorFromErr(apperrors.ErrMalformedMessage))
		return
	}

	name := strings.TrimSpace(payload.Name)
	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}

	chips := h.startingChips
	if payload.Chips != nil {
		chips = *payload.Chips
	}

	h.submit(client, room.Action{Type: protocol.MsgJoin, Name: name, Chips: chips})
}

// handleDeal 处理下注
func (h *Handler) handleDeal(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.DealPayload](msg)
	if err != nil || payload.Bet == nil {
		client.SendMessage(codec.NewErrorFromErr(apperrors.ErrMalformedMessage))
		return
	}

	h.submit(client, room.Action{Type: protocol.MsgDeal, Bet: *payload.Bet, Hand: payload.Hand})
}

// handleHandAction 处理要牌/停牌/分牌/加倍，hand 缺省为 0
func (h *Handler) handleHandAction(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.HandActionPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorFromErr(apperrors.ErrMalformedMessage))
		return
	}

	h.submit(client, room.Action{Type: msg.Type, Hand: payload.Hand})
}
