package room

import (
	"time"

	"github.com/palemoky/blackjack/internal/types"
)

// gateState 节流闸门状态
//
// 每局第一条 deal（或没有牌局时的第一条操作）打开计时，计时期间到达的指令
// 先缓存，计时结束后按到达顺序执行；此后直到牌桌回到等待下注都不再计时。
type gateState int

const (
	gateIdle  gateState = iota // 未计时
	gateArmed                  // 计时中，指令缓存
	gateOpen                   // 本局已放行
)

func (g gateState) String() string {
	switch g {
	case gateArmed:
		return "armed"
	case gateOpen:
		return "open"
	}
	return "idle"
}

// pendingAction 计时期间缓存的指令
type pendingAction struct {
	client   types.ClientInterface
	action   Action
	received time.Time
}
