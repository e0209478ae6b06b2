package round

// Phase 牌局阶段
type Phase int

const (
	PhaseAwaitingBets Phase = iota // 等待下注
	PhaseDealtInitial              // 已发首轮牌
	PhasePlayerTurns               // 玩家行动
	PhaseDealerTurn                // 庄家行动
	PhaseSettlement                // 结算
	PhaseReset                     // 清理，随后回到等待下注
)

// phaseNames 阶段名称映射表
var phaseNames = map[Phase]string{
	PhaseAwaitingBets: "awaiting_bets",
	PhaseDealtInitial: "dealt_initial",
	PhasePlayerTurns:  "player_turns",
	PhaseDealerTurn:   "dealer_turn",
	PhaseSettlement:   "settlement",
	PhaseReset:        "reset",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// tracker 房间级完成计数：本局所有手牌中已结束行动的数量
type tracker struct {
	finished int
	total    int
}

func (t *tracker) add(n int) { t.total += n }

func (t *tracker) finish() { t.finished++ }

// complete 全部手牌结束，庄家可以行动
func (t *tracker) complete() bool {
	return t.total > 0 && t.finished == t.total
}

func (t *tracker) reset() {
	t.finished = 0
	t.total = 0
}
