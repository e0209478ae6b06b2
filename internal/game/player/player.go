package player

import (
	"fmt"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/game/card"
	"github.com/palemoky/blackjack/internal/game/rule"
)

// Policy 决策方式
type Policy int

const (
	PolicyInteractive Policy = iota // 玩家：由客户端操作决定
	PolicyFixed                     // 庄家：固定要牌策略
)

func (p Policy) String() string {
	if p == PolicyFixed {
		return "fixed"
	}
	return "interactive"
}

// Player 座位状态
//
// 庄家与玩家共用同一结构，由 Policy 区分。Hands[0] 是主手牌，其余来自分牌。
type Player struct {
	ID     string
	Name   string
	Chips  int
	Hands  []*rule.Hand
	Wager  int // 本局已投入的筹码总数
	Policy Policy

	InRound bool // 本局已下注
	Left    bool // 连接已断开，局末离座
}

// New 创建玩家
func New(id, name string, chips int) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Chips:  chips,
		Hands:  []*rule.Hand{rule.NewHand()},
		Policy: PolicyInteractive,
	}
}

// NewDealer 创建庄家
func NewDealer() *Player {
	return &Player{
		ID:     "dealer",
		Name:   "Dealer",
		Hands:  []*rule.Hand{rule.NewHand()},
		Policy: PolicyFixed,
	}
}

// IsDealer 是否按固定策略行动
func (p *Player) IsDealer() bool {
	return p.Policy == PolicyFixed
}

// Bet 扣除并返回下注额。负数或超过余额时不做任何修改。
func (p *Player) Bet(amount int) (int, error) {
	if amount < 0 {
		return 0, apperrors.ErrInvalidBet
	}
	if amount > p.Chips {
		return 0, apperrors.ErrInsufficientChips
	}
	p.Chips -= amount
	p.Wager += amount
	return amount, nil
}

// Credit 派彩
func (p *Player) Credit(amount int) {
	p.Chips += amount
}

// Hand 按下标取手牌
func (p *Player) Hand(idx int) (*rule.Hand, error) {
	if idx < 0 || idx >= len(p.Hands) {
		return nil, apperrors.ErrInvalidHandIndex
	}
	return p.Hands[idx], nil
}

// Primary 主手牌
func (p *Player) Primary() *rule.Hand {
	return p.Hands[0]
}

// Hit 给指定手牌发一张牌
func (p *Player) Hit(idx int, shoe rule.CardSource) (card.Card, error) {
	h, err := p.Hand(idx)
	if err != nil {
		return card.Card{}, err
	}
	c, err := shoe.Deal()
	if err != nil {
		return card.Card{}, fmt.Errorf("hit hand %d: %w", idx, err)
	}
	h.Add(c)
	return c, nil
}

// AddHand 追加一手（分牌产生）
func (p *Player) AddHand(h *rule.Hand) {
	p.Hands = append(p.Hands, h)
}

// ClearHands 回到一手空牌，保留筹码与身份
func (p *Player) ClearHands() {
	p.Hands = []*rule.Hand{rule.NewHand()}
	p.Wager = 0
	p.InRound = false
}

// Cursor 第一手未结束的手牌，全部结束时返回 -1
func (p *Player) Cursor() int {
	for i, h := range p.Hands {
		if !h.Done {
			return i
		}
	}
	return -1
}

// Finished 已结束行动的手数
func (p *Player) Finished() int {
	n := 0
	for _, h := range p.Hands {
		if h.Done {
			n++
		}
	}
	return n
}

// ShouldHit 固定策略下是否继续要牌；玩家永远返回 false
func (p *Player) ShouldHit() bool {
	if !p.IsDealer() {
		return false
	}
	h := p.Primary()
	if h.IsBlackjack() || h.IsBust() {
		return false
	}
	return rule.DealerShouldHit(h)
}

// UpCard 庄家明牌
func (p *Player) UpCard() (card.Card, bool) {
	h := p.Primary()
	if h.Len() == 0 {
		return card.Card{}, false
	}
	return h.Cards[0], true
}
