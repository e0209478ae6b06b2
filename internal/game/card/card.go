package card

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// Card 定义一张牌，创建后不可变
type Card struct {
	Suit Suit
	Rank Rank
}

const (
	Hearts   Suit = iota // 红心
	Diamonds             // 方块
	Clubs                // 梅花
	Spades               // 黑桃
)

// Suits 按建牌顺序排列的花色
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// suitNames 花色名称映射表
var suitNames = map[Suit]string{
	Hearts:   "Hearts",
	Diamonds: "Diamonds",
	Clubs:    "Clubs",
	Spades:   "Spades",
}

// suitSymbols 花色符号映射表（终端渲染用）
var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return ""
}

// Symbol 返回花色符号
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// IsRed 红心和方块为红色
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	RankJ: "J",
	RankQ: "Q",
	RankK: "K",
	RankA: "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Value 返回点数：J/Q/K 记 10，A 记 11（软 A 由手牌计算时降为 1）
func (r Rank) Value() int {
	switch {
	case r == RankA:
		return 11
	case r >= RankJ:
		return 10
	default:
		return int(r)
	}
}

// Value 返回单张牌的点数
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsAce 是否为 A
func (c Card) IsAce() bool {
	return c.Rank == RankA
}

// String 形如 "A of Spades"
func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// Short 形如 "A♠"
func (c Card) Short() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// ParseRank 解析点数字符串
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "J":
		return RankJ, nil
	case "Q":
		return RankQ, nil
	case "K":
		return RankK, nil
	case "A":
		return RankA, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(Rank2) || n > int(Rank10) {
		return 0, fmt.Errorf("无法识别的点数: %q", s)
	}
	return Rank(n), nil
}

// ParseCard 解析 "A of Spades" 格式的牌
func ParseCard(s string) (Card, error) {
	rankPart, suitPart, ok := strings.Cut(s, " of ")
	if !ok {
		return Card{}, fmt.Errorf("无法识别的牌: %q", s)
	}
	rank, err := ParseRank(rankPart)
	if err != nil {
		return Card{}, err
	}
	for suit, name := range suitNames {
		if strings.EqualFold(name, strings.TrimSpace(suitPart)) {
			return Card{Suit: suit, Rank: rank}, nil
		}
	}
	return Card{}, fmt.Errorf("无法识别的花色: %q", suitPart)
}

// MustParse 解析一组牌，失败时 panic（测试与固定牌序使用）
func MustParse(specs ...string) []Card {
	cards := make([]Card, 0, len(specs))
	for _, s := range specs {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

// Strings 将牌转换为字符串列表
func Strings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
