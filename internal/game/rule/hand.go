package rule

import (
	"fmt"
	"strings"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/game/card"
)

const (
	// BlackjackValue 21 点
	BlackjackValue = 21
	// aceReduction 软 A 从 11 降为 1 的差值
	aceReduction = 10
)

// CardSource 可以发牌的来源（通常是 *card.Shoe）
type CardSource interface {
	Deal() (card.Card, error)
	Remaining() int
}

// Hand 一手牌
//
// Stake 与 Done 是本局的记账字段：该手的注码和是否已结束行动。
type Hand struct {
	Cards []card.Card
	Stake int
	Done  bool
}

// NewHand 用给定的牌创建一手牌
func NewHand(cards ...card.Card) *Hand {
	h := &Hand{Cards: make([]card.Card, 0, 4)}
	h.Cards = append(h.Cards, cards...)
	return h
}

// Add 加一张牌
func (h *Hand) Add(c card.Card) {
	h.Cards = append(h.Cards, c)
}

// Len 牌数
func (h *Hand) Len() int {
	return len(h.Cards)
}

// Clear 清空手牌与本局记账
func (h *Hand) Clear() {
	h.Cards = h.Cards[:0]
	h.Stake = 0
	h.Done = false
}

// Value 每次从头计算点数：先按 A=11 求和，超过 21 时逐张把 A 降为 1
func (h *Hand) Value() int {
	value, _ := h.total()
	return value
}

// IsSoft 是否仍有按 11 计的 A
func (h *Hand) IsSoft() bool {
	_, softAces := h.total()
	return softAces > 0
}

func (h *Hand) total() (value, softAces int) {
	for _, c := range h.Cards {
		value += c.Value()
		if c.IsAce() {
			softAces++
		}
	}
	for value > BlackjackValue && softAces > 0 {
		value -= aceReduction
		softAces--
	}
	return value, softAces
}

// IsBust 爆牌
func (h *Hand) IsBust() bool {
	return h.Value() > BlackjackValue
}

// IsBlackjack 两张牌 21 点（不区分 10 与人头牌）
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Value() == BlackjackValue
}

// IsSplitable 两张同点数的牌
func (h *Hand) IsSplitable() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// Split 把第二张牌移到新手牌，再给两手各补一张。
// 不满足条件或牌靴不足两张时不做任何修改。
func (h *Hand) Split(shoe CardSource) (*Hand, error) {
	if !h.IsSplitable() {
		return nil, apperrors.ErrNotSplitable
	}
	if shoe.Remaining() < 2 {
		return nil, fmt.Errorf("split: %w", card.ErrShoeExhausted)
	}

	second := h.Cards[1]
	h.Cards = h.Cards[:1]
	next := NewHand(second)

	// 上面已检查余量，这里不会失败
	c1, _ := shoe.Deal()
	c2, _ := shoe.Deal()
	h.Add(c1)
	next.Add(c2)

	return next, nil
}

// String 形如 "A of Spades, 6 of Hearts"
func (h *Hand) String() string {
	return strings.Join(card.Strings(h.Cards), ", ")
}
