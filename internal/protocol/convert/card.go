package convert

import (
	"github.com/palemoky/blackjack/internal/game/card"
	"github.com/palemoky/blackjack/internal/game/rule"
	"github.com/palemoky/blackjack/internal/protocol"
)

// HandToInfo 将 rule.Hand 转换为 protocol.HandInfo
func HandToInfo(h *rule.Hand) protocol.HandInfo {
	return protocol.HandInfo{
		Cards:     card.Strings(h.Cards),
		Value:     h.Value(),
		Busted:    h.IsBust(),
		Blackjack: h.IsBlackjack(),
		Soft:      h.IsSoft(),
		Stake:     h.Stake,
		Finished:  h.Done,
	}
}

// HandsToInfos 将 []*rule.Hand 转换为 []protocol.HandInfo
func HandsToInfos(hands []*rule.Hand) []protocol.HandInfo {
	infos := make([]protocol.HandInfo, len(hands))
	for i, h := range hands {
		infos[i] = HandToInfo(h)
	}
	return infos
}

// HandsToCards 每手牌的牌面字符串
func HandsToCards(hands []*rule.Hand) [][]string {
	result := make([][]string, len(hands))
	for i, h := range hands {
		result[i] = card.Strings(h.Cards)
	}
	return result
}

// DealerUpInfo 庄家只亮明牌时的手牌信息
func DealerUpInfo(h *rule.Hand) protocol.HandInfo {
	if h.Len() == 0 {
		return protocol.HandInfo{Cards: []string{}}
	}
	up := rule.NewHand(h.Cards[0])
	return protocol.HandInfo{
		Cards: card.Strings(up.Cards),
		Value: up.Value(),
	}
}

// InfoToHand 将 protocol.HandInfo 还原为 rule.Hand（客户端渲染用）
func InfoToHand(info protocol.HandInfo) (*rule.Hand, error) {
	cards, err := StringsToCards(info.Cards)
	if err != nil {
		return nil, err
	}
	h := rule.NewHand(cards...)
	h.Stake = info.Stake
	h.Done = info.Finished
	return h, nil
}

// StringsToCards 将 "A of Spades" 形式的字符串解析为 []card.Card
func StringsToCards(specs []string) ([]card.Card, error) {
	cards := make([]card.Card, 0, len(specs))
	for _, s := range specs {
		c, err := card.ParseCard(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
