package protocol

import "encoding/json"

// Message 基础消息结构
//
// 线上格式为扁平 JSON 对象：{"type": "...", ...payload 字段}。
// Payload 保存除 type 以外的原始 JSON 对象。
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgJoin   MessageType = "join"   // 入座（名字 + 初始筹码）
	MsgDeal   MessageType = "deal"   // 下注并发牌
	MsgHit    MessageType = "hit"    // 要牌
	MsgStand  MessageType = "stand"  // 停牌
	MsgSplit  MessageType = "split"  // 分牌
	MsgDouble MessageType = "double" // 加倍
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnectionGood MessageType = "connection_good" // 连接成功
	MsgPlayerJoin     MessageType = "player_join"     // 有玩家入座（广播）

	// 牌局流程
	MsgGameState      MessageType = "game_state"       // 自己的手牌与筹码
	MsgCards          MessageType = "cards"            // 亮牌（广播，庄家只亮明牌）
	MsgSplitable      MessageType = "splitable"        // 当前手牌可分
	MsgHandIndex      MessageType = "hand_index"       // 当前手牌游标
	MsgWaitForPlayers MessageType = "wait_for_players" // 等待其他玩家
	MsgWinner         MessageType = "winner"           // 单手结算结果
	MsgEndGame        MessageType = "end_game"         // 庄家终局手牌 + 筹码
	MsgReset          MessageType = "reset"            // 新一局

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// IsAction 是否为牌局内操作（要牌/停牌/分牌/加倍）
func (t MessageType) IsAction() bool {
	switch t {
	case MsgHit, MsgStand, MsgSplit, MsgDouble:
		return true
	}
	return false
}
