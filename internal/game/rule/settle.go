package rule

// Outcome 单手结算结果
type Outcome int

const (
	OutcomePlayerBlackjack Outcome = iota // 玩家黑杰克
	OutcomeDealerBlackjack                // 庄家黑杰克
	OutcomeBlackjackPush                  // 双方黑杰克
	OutcomePlayerBust                     // 玩家爆牌
	OutcomeDealerBust                     // 庄家爆牌
	OutcomePush                           // 同点
	OutcomePlayerWin                      // 玩家点大
	OutcomePlayerLoss                     // 玩家点小
)

// outcomeNames 结果名称映射表
var outcomeNames = map[Outcome]string{
	OutcomePlayerBlackjack: "blackjack",
	OutcomeDealerBlackjack: "dealer_blackjack",
	OutcomeBlackjackPush:   "blackjack_push",
	OutcomePlayerBust:      "bust",
	OutcomeDealerBust:      "dealer_bust",
	OutcomePush:            "push",
	OutcomePlayerWin:       "win",
	OutcomePlayerLoss:      "loss",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// Settle 按固定优先级判定一手牌对庄家终局手牌的结果（黑杰克判定优先）
func Settle(player, dealer *Hand) Outcome {
	playerBJ := player.IsBlackjack()
	dealerBJ := dealer.IsBlackjack()
	playerValue := player.Value()
	dealerValue := dealer.Value()

	switch {
	case playerBJ && !dealerBJ:
		return OutcomePlayerBlackjack
	case !playerBJ && dealerBJ:
		return OutcomeDealerBlackjack
	case playerBJ && dealerBJ:
		return OutcomeBlackjackPush
	case playerValue > BlackjackValue:
		return OutcomePlayerBust
	case dealerValue > BlackjackValue:
		return OutcomeDealerBust
	case playerValue == dealerValue:
		return OutcomePush
	case playerValue > dealerValue:
		return OutcomePlayerWin
	default:
		return OutcomePlayerLoss
	}
}

// Payout 结算时返还给玩家的筹码（注码已在下注时扣除）
func (o Outcome) Payout(stake int) int {
	switch o {
	case OutcomePlayerBlackjack:
		return stake * 5 / 2
	case OutcomeDealerBust, OutcomePlayerWin:
		return stake * 2
	case OutcomeBlackjackPush, OutcomePush:
		return stake
	default:
		return 0
	}
}

// IsWin 玩家赢
func (o Outcome) IsWin() bool {
	return o == OutcomePlayerBlackjack || o == OutcomeDealerBust || o == OutcomePlayerWin
}

// IsPush 和局
func (o Outcome) IsPush() bool {
	return o == OutcomeBlackjackPush || o == OutcomePush
}
