package round

import (
	"github.com/palemoky/blackjack/internal/game/rule"
	"github.com/palemoky/blackjack/internal/protocol"
)

// Event 一条待投递的消息
//
// To 为空时广播给房间内所有连接（跳过 Except），否则只发给该连接。
type Event struct {
	To      string
	Except  []string
	Type    protocol.MessageType
	Payload any
}

// IsBroadcast 是否为房间广播
func (e Event) IsBroadcast() bool {
	return e.To == ""
}

// Skips 广播时是否跳过该连接
func (e Event) Skips(id string) bool {
	for _, ex := range e.Except {
		if ex == id {
			return true
		}
	}
	return false
}

// Result 单手结算记录（用于战绩统计）
type Result struct {
	RoundID   string
	PlayerID  string
	Name      string
	HandIndex int
	Outcome   rule.Outcome
	Stake     int
	Payout    int
}

// Net 该手净输赢
func (r Result) Net() int {
	return r.Payout - r.Stake
}

// Snapshot 牌桌快照
type Snapshot struct {
	RoundID        string            `json:"round_id"`
	Phase          string            `json:"phase"`
	CardsRemaining int               `json:"cards_remaining"`
	Dealer         protocol.HandInfo `json:"dealer"`
	Seats          []SeatSnapshot    `json:"seats"`
	Finished       int               `json:"finished"`
	Total          int               `json:"total"`
}

// SeatSnapshot 座位快照
type SeatSnapshot struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Chips    int                 `json:"chips"`
	Wager    int                 `json:"wager"`
	InRound  bool                `json:"in_round"`
	Finished int                 `json:"finished"` // 已结束行动的手数
	Hands    []protocol.HandInfo `json:"hands"`
}
