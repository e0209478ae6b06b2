package rule

// dealerStandValue 庄家停牌线
const dealerStandValue = 17

// DealerShouldHit 庄家固定策略。
//
// 小于 17 要牌，大于 17 停牌。恰好 17 时找第一张 A：
// A 在第一张且第二张点数 ≤ 6，或 A 在第二张且第一张点数 ≤ 6 时要牌，其余停牌；
// 没有 A 的 17 停牌。这是软 17 规则的一个变体，不要“修正”。
func DealerShouldHit(h *Hand) bool {
	value := h.Value()
	switch {
	case value < dealerStandValue:
		return true
	case value > dealerStandValue:
		return false
	}

	for i, c := range h.Cards {
		if !c.IsAce() {
			continue
		}
		switch {
		case i == 0 && len(h.Cards) > 1 && h.Cards[1].Value() <= 6:
			return true
		case i == 1 && h.Cards[0].Value() <= 6:
			return true
		default:
			return false
		}
	}
	return false
}
