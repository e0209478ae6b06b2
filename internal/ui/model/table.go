package model

import (
	"github.com/palemoky/blackjack/internal/protocol"
)

// maxLogLines 牌桌日志保留的行数
const maxLogLines = 8

// Seat 其他玩家的亮牌
type Seat struct {
	Name  string
	Cards [][]string
}

// Table 客户端视角的牌桌状态
type Table struct {
	Room           string
	ConnID         string
	CardsRemaining int

	// 自己
	Name      string
	Chips     int
	Hands     []protocol.HandInfo
	HandIndex int
	Splitable bool
	Seated    bool

	Dealer   protocol.HandInfo
	Seats    []Seat // 按首次亮牌顺序
	Finished int
	Total    int

	Results   []protocol.WinnerPayload
	RoundOver bool // 已结算，下一次发牌前保留结果

	Log []string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// AddLog 追加一行日志，只保留最近 maxLogLines 行
func (t *Table) AddLog(line string) {
	t.Log = append(t.Log, line)
	if len(t.Log) > maxLogLines {
		t.Log = t.Log[len(t.Log)-maxLogLines:]
	}
}

// ApplyGameState 应用自己视角的牌局状态
func (t *Table) ApplyGameState(p *protocol.GameStatePayload) {
	t.clearIfRoundOver()
	t.Hands = p.PlayerHands
	t.Dealer = p.DealerHand
	t.Chips = p.Chips
	t.HandIndex = p.HandIndex
	t.Splitable = false
}

// ApplyCards 记录某位玩家的亮牌与庄家明牌
func (t *Table) ApplyCards(p *protocol.CardsPayload) {
	t.clearIfRoundOver()
	if p.DealerCard != "" && len(t.Dealer.Cards) == 0 {
		t.Dealer = protocol.HandInfo{Cards: []string{p.DealerCard}}
	}
	if p.PlayerName == t.Name && t.Seated {
		return
	}
	for i := range t.Seats {
		if t.Seats[i].Name == p.PlayerName {
			t.Seats[i].Cards = p.PlayerCards
			return
		}
	}
	t.Seats = append(t.Seats, Seat{Name: p.PlayerName, Cards: p.PlayerCards})
}

// ApplyEndGame 揭示庄家终局手牌
func (t *Table) ApplyEndGame(p *protocol.EndGamePayload) {
	t.Dealer = protocol.HandInfo{
		Cards:     p.DealerCards,
		Value:     p.DealerValue,
		Busted:    p.DealerBusted,
		Blackjack: p.DealerBlackjack,
	}
	if p.PlayerChips != nil {
		t.Chips = *p.PlayerChips
	}
	t.RoundOver = true
}

// ApplyReset 新一局开始
func (t *Table) ApplyReset(p *protocol.ResetPayload) {
	t.CardsRemaining = p.CardsRemaining
	t.Finished = 0
	t.Total = 0
	t.HandIndex = 0
	t.Splitable = false
	t.RoundOver = true
}

// CurrentHand 当前行动的手牌
func (t *Table) CurrentHand() (protocol.HandInfo, bool) {
	if t.HandIndex < 0 || t.HandIndex >= len(t.Hands) {
		return protocol.HandInfo{}, false
	}
	return t.Hands[t.HandIndex], true
}

// clearIfRoundOver 上一局结算后第一条新牌局消息到达时清空桌面
func (t *Table) clearIfRoundOver() {
	if !t.RoundOver {
		return
	}
	t.RoundOver = false
	t.Hands = nil
	t.Dealer = protocol.HandInfo{}
	t.Seats = nil
	t.Results = nil
}
