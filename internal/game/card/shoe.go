package card

import (
	"errors"
	"math/rand/v2"
)

// DefaultDecks 默认牌靴副数
const DefaultDecks = 2

// ErrShoeExhausted 牌靴已空。正常情况下由低水位换靴保证不可达
var ErrShoeExhausted = errors.New("shoe exhausted")

// Shoe 多副牌洗混后的牌靴，归单个房间独占
type Shoe struct {
	cards []Card
	decks int
}

// NewShoe 按副数建靴并均匀洗牌。rng 为 nil 时使用全局随机源
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks <= 0 {
		numDecks = DefaultDecks
	}

	cards := make([]Card, 0, numDecks*52)
	for range numDecks {
		for _, s := range Suits {
			for r := Rank2; r <= RankA; r++ {
				cards = append(cards, Card{Suit: s, Rank: r})
			}
		}
	}

	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if rng != nil {
		rng.Shuffle(len(cards), swap)
	} else {
		rand.Shuffle(len(cards), swap)
	}

	return &Shoe{cards: cards, decks: numDecks}
}

// NewShoeFromCards 按给定顺序构造牌靴（不洗牌），用于固定牌序
func NewShoeFromCards(cards ...Card) *Shoe {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Shoe{cards: stacked, decks: 1}
}

// Deal 从靴首取出一张牌
func (s *Shoe) Deal() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c, nil
}

// Remaining 剩余未发的牌数
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Decks 建靴时的副数
func (s *Shoe) Decks() int {
	return s.decks
}
