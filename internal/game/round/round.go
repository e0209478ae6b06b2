package round

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/game/card"
	"github.com/palemoky/blackjack/internal/game/player"
	"github.com/palemoky/blackjack/internal/game/rule"
	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/protocol/convert"
)

// Config 牌局参数
type Config struct {
	MaxHands int // 每位玩家最多手数（含分牌），<= 0 不限
}

// Round 单个房间的牌局状态机
//
// 非并发安全：由房间协程独占调用。每个操作要么返回错误且不修改任何状态，
// 要么完成全部状态迁移并返回需要投递的事件。
type Round struct {
	cfg     Config
	id      string
	phase   Phase
	shoe    *card.Shoe
	dealer  *player.Player
	players map[string]*player.Player
	seats   []string // 入座顺序
	tracker tracker
	results []Result
	events  []Event

	batching bool // 批量放行期间庄家闸门挂起
}

// New 创建牌局
func New(cfg Config, shoe *card.Shoe) *Round {
	return &Round{
		cfg:     cfg,
		phase:   PhaseAwaitingBets,
		shoe:    shoe,
		dealer:  player.NewDealer(),
		players: make(map[string]*player.Player),
	}
}

// ID 当前局 ID，尚未开局时为空
func (r *Round) ID() string { return r.id }

// Phase 当前阶段
func (r *Round) Phase() Phase { return r.phase }

// Shoe 当前牌靴
func (r *Round) Shoe() *card.Shoe { return r.shoe }

// SetShoe 换牌靴（洗牌）
func (r *Round) SetShoe(s *card.Shoe) { r.shoe = s }

// Dealer 庄家
func (r *Round) Dealer() *player.Player { return r.dealer }

// Player 按连接 ID 取玩家
func (r *Round) Player(id string) (*player.Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// Players 按入座顺序返回所有玩家
func (r *Round) Players() []*player.Player {
	result := make([]*player.Player, 0, len(r.seats))
	for _, id := range r.seats {
		result = append(result, r.players[id])
	}
	return result
}

// Progress 完成计数：已结束手数 / 本局总手数
func (r *Round) Progress() (finished, total int) {
	return r.tracker.finished, r.tracker.total
}

// TakeResults 取出并清空最近一次结算的记录
func (r *Round) TakeResults() []Result {
	results := r.results
	r.results = nil
	return results
}

// Join 入座。同一连接重复入座被静默忽略。
func (r *Round) Join(id, name string, chips int) ([]Event, error) {
	if _, ok := r.players[id]; ok {
		return nil, nil
	}
	if name == "" || chips < 0 {
		return nil, apperrors.ErrMalformedMessage
	}

	p := player.New(id, name, chips)
	r.players[id] = p
	r.seats = append(r.seats, id)

	r.emit(id, protocol.MsgJoin, protocol.JoinedPayload{Name: name, Chips: chips})
	r.broadcast(protocol.MsgPlayerJoin, protocol.PlayerJoinPayload{PlayerName: name})
	return r.flush(), nil
}

// Deal 下注并发首轮牌
//
// 等待下注阶段的第一次下注开局（庄家拿两张）；玩家行动阶段的下注加入进行中的这一局。
func (r *Round) Deal(id string, bet int) ([]Event, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, apperrors.ErrNotJoined
	}
	if p.InRound {
		return nil, apperrors.ErrAlreadyBet
	}
	if r.phase != PhaseAwaitingBets && r.phase != PhasePlayerTurns {
		return nil, apperrors.ErrRoundInProgress
	}

	opening := r.phase == PhaseAwaitingBets
	need := 2
	if opening {
		need += 2
	}
	if err := r.need(need); err != nil {
		return nil, err
	}
	if _, err := p.Bet(bet); err != nil {
		return nil, err
	}

	if opening {
		r.id = uuid.NewString()
		r.draw(r.dealer.Primary(), 2)
		r.phase = PhaseDealtInitial
	}

	h := p.Primary()
	r.draw(h, 2)
	h.Stake = bet
	p.InRound = true
	r.tracker.add(1)

	r.broadcast(protocol.MsgCards, r.cardsPayload(p))

	// 天生黑杰克不需要行动
	if h.IsBlackjack() {
		r.finish(h)
	}
	r.phase = PhasePlayerTurns
	return r.conclude(p)
}

// Hit 要牌。爆牌时该手结束。
func (r *Round) Hit(id string, idx int) ([]Event, error) {
	p, h, err := r.actionHand(id, idx)
	if err != nil {
		return nil, err
	}
	if err := r.need(1); err != nil {
		return nil, err
	}
	if _, err := p.Hit(idx, r.shoe); err != nil {
		return nil, err
	}
	if h.IsBust() {
		r.finish(h)
	}

	r.broadcast(protocol.MsgCards, r.cardsPayload(p))
	return r.conclude(p)
}

// Stand 停牌
func (r *Round) Stand(id string, idx int) ([]Event, error) {
	p, h, err := r.actionHand(id, idx)
	if err != nil {
		return nil, err
	}
	r.finish(h)
	return r.conclude(p)
}

// Split 分牌：新手牌追加到末尾，押同样的注
func (r *Round) Split(id string, idx int) ([]Event, error) {
	p, h, err := r.actionHand(id, idx)
	if err != nil {
		return nil, err
	}
	if r.cfg.MaxHands > 0 && len(p.Hands) >= r.cfg.MaxHands {
		return nil, apperrors.ErrMaxHands
	}
	if !h.IsSplitable() {
		return nil, apperrors.ErrNotSplitable
	}
	if p.Chips < h.Stake {
		return nil, apperrors.ErrInsufficientChips
	}

	next, err := h.Split(r.shoe)
	if err != nil {
		if errors.Is(err, card.ErrShoeExhausted) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrShoeExhausted, err)
		}
		return nil, err
	}
	// 上面已检查余额
	_, _ = p.Bet(h.Stake)
	next.Stake = h.Stake
	p.AddHand(next)
	r.tracker.add(1)

	for _, sh := range []*rule.Hand{h, next} {
		if sh.IsBlackjack() {
			r.finish(sh)
		}
	}

	r.broadcast(protocol.MsgCards, r.cardsPayload(p))
	return r.conclude(p)
}

// Double 加倍：注码翻倍，只补一张牌，该手随即结束
func (r *Round) Double(id string, idx int) ([]Event, error) {
	p, h, err := r.actionHand(id, idx)
	if err != nil {
		return nil, err
	}
	if p.Chips < h.Stake {
		return nil, apperrors.ErrInsufficientChipsDouble
	}
	if err := r.need(1); err != nil {
		return nil, err
	}

	_, _ = p.Bet(h.Stake)
	h.Stake *= 2
	if _, err := p.Hit(idx, r.shoe); err != nil {
		return nil, err
	}
	r.finish(h)

	r.broadcast(protocol.MsgCards, r.cardsPayload(p))
	return r.conclude(p)
}

// Leave 连接断开
//
// 不在本局中的玩家直接离座；本局中的玩家未结束的手牌自动停牌，
// 已下的注照常结算，局末离座。
func (r *Round) Leave(id string) ([]Event, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, nil
	}
	if !p.InRound || r.phase != PhasePlayerTurns {
		r.unseat(id)
		return nil, nil
	}

	p.Left = true
	for _, h := range p.Hands {
		r.finish(h)
	}
	err := r.advanceDealer()
	return r.flush(), err
}

// GameState 玩家视角的牌局状态
func (r *Round) GameState(id string) (protocol.GameStatePayload, bool) {
	p, ok := r.players[id]
	if !ok {
		return protocol.GameStatePayload{}, false
	}
	return r.gameState(p), true
}

// Snapshot 牌桌快照（庄家底牌可见，仅供服务端存档）
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		RoundID:        r.id,
		Phase:          r.phase.String(),
		CardsRemaining: r.shoe.Remaining(),
		Dealer:         convert.HandToInfo(r.dealer.Primary()),
		Seats:          make([]SeatSnapshot, 0, len(r.seats)),
		Finished:       r.tracker.finished,
		Total:          r.tracker.total,
	}
	for _, p := range r.Players() {
		s.Seats = append(s.Seats, SeatSnapshot{
			ID:       p.ID,
			Name:     p.Name,
			Chips:    p.Chips,
			Wager:    p.Wager,
			InRound:  p.InRound,
			Finished: p.Finished(),
			Hands:    convert.HandsToInfos(p.Hands),
		})
	}
	return s
}

// --- 内部流程 ---

// actionHand 校验玩家行动的目标手牌
func (r *Round) actionHand(id string, idx int) (*player.Player, *rule.Hand, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, nil, apperrors.ErrNotJoined
	}
	if r.phase != PhasePlayerTurns || !p.InRound {
		return nil, nil, apperrors.ErrNoActiveRound
	}
	h, err := p.Hand(idx)
	if err != nil {
		return nil, nil, err
	}
	if h.Done {
		return nil, nil, apperrors.ErrHandFinished
	}
	return p, h, nil
}

// need 在修改状态之前确认牌靴余量
func (r *Round) need(n int) error {
	if remaining := r.shoe.Remaining(); remaining < n {
		return fmt.Errorf("%w: need %d cards, %d left: %w",
			apperrors.ErrShoeExhausted, n, remaining, card.ErrShoeExhausted)
	}
	return nil
}

// draw 发 n 张牌，调用前已经 need 过
func (r *Round) draw(h *rule.Hand, n int) {
	for range n {
		c, err := r.shoe.Deal()
		if err != nil {
			return
		}
		h.Add(c)
	}
}

func (r *Round) finish(h *rule.Hand) {
	if h.Done {
		return
	}
	h.Done = true
	r.tracker.finish()
}

// conclude 通知行动玩家，然后检查庄家闸门
func (r *Round) conclude(p *player.Player) ([]Event, error) {
	r.emit(p.ID, protocol.MsgGameState, r.gameState(p))

	if cursor := p.Cursor(); cursor >= 0 {
		r.emit(p.ID, protocol.MsgHandIndex, protocol.HandIndexPayload{HandIndex: cursor})
		canSplit := r.cfg.MaxHands <= 0 || len(p.Hands) < r.cfg.MaxHands
		if canSplit && p.Hands[cursor].IsSplitable() {
			r.emit(p.ID, protocol.MsgSplitable, protocol.SplitablePayload{HandIndex: cursor})
		}
	} else if r.batching || !r.tracker.complete() {
		r.emit(p.ID, protocol.MsgWaitForPlayers, protocol.WaitForPlayersPayload{
			Finished: r.tracker.finished,
			Total:    r.tracker.total,
		})
	}

	err := r.advanceDealer()
	return r.flush(), err
}

// BeginBatch 开始批量执行：同一批指令全部执行完之前庄家不行动，
// 一起下注的玩家即使有人拿到天生黑杰克也共用同一轮首发牌。
func (r *Round) BeginBatch() {
	r.batching = true
}

// EndBatch 结束批量执行并检查一次庄家闸门
func (r *Round) EndBatch() ([]Event, error) {
	if !r.batching {
		return nil, nil
	}
	r.batching = false
	err := r.advanceDealer()
	return r.flush(), err
}

// advanceDealer 只有完成计数等于总手数时才进入庄家回合、结算与清理
func (r *Round) advanceDealer() error {
	if r.batching || !r.tracker.complete() {
		return nil
	}
	err := r.playDealer()
	r.settle()
	r.reset()
	return err
}

// playDealer 庄家按固定策略要牌，直到停牌、爆牌或黑杰克。
// 牌靴中途耗尽时庄家以现有手牌结算，错误交给上层记录。
func (r *Round) playDealer() error {
	r.phase = PhaseDealerTurn
	for r.dealer.ShouldHit() {
		if _, err := r.dealer.Hit(0, r.shoe); err != nil {
			return fmt.Errorf("%w: dealer turn: %w", apperrors.ErrShoeExhausted, err)
		}
	}
	return nil
}

// settle 每手牌分别与同一个庄家终局手牌比较
func (r *Round) settle() {
	r.phase = PhaseSettlement
	dh := r.dealer.Primary()

	for _, p := range r.Players() {
		if !p.InRound {
			continue
		}
		for i, h := range p.Hands {
			outcome := rule.Settle(h, dh)
			payout := outcome.Payout(h.Stake)
			p.Credit(payout)

			r.results = append(r.results, Result{
				RoundID:   r.id,
				PlayerID:  p.ID,
				Name:      p.Name,
				HandIndex: i,
				Outcome:   outcome,
				Stake:     h.Stake,
				Payout:    payout,
			})
			r.emit(p.ID, protocol.MsgWinner, protocol.WinnerPayload{
				Message:   winnerMessage(p.Name, h, dh, outcome),
				HandIndex: i,
				Outcome:   outcome.String(),
				Payout:    payout,
			})
		}
	}

	end := protocol.EndGamePayload{
		DealerCards:     card.Strings(dh.Cards),
		DealerValue:     dh.Value(),
		DealerBusted:    dh.IsBust(),
		DealerBlackjack: dh.IsBlackjack(),
	}
	seated := make([]string, 0, len(r.seats))
	for _, p := range r.Players() {
		chips := p.Chips
		personal := end
		personal.PlayerChips = &chips
		r.emit(p.ID, protocol.MsgEndGame, personal)
		seated = append(seated, p.ID)
	}
	r.broadcast(protocol.MsgEndGame, end, seated...)
}

// reset 清空所有手牌，离开的玩家离座，回到等待下注
func (r *Round) reset() {
	r.phase = PhaseReset
	r.dealer.ClearHands()
	for _, p := range r.Players() {
		if p.Left {
			r.unseat(p.ID)
			continue
		}
		p.ClearHands()
	}
	r.tracker.reset()

	r.broadcast(protocol.MsgReset, protocol.ResetPayload{CardsRemaining: r.shoe.Remaining()})
	r.phase = PhaseAwaitingBets
}

func (r *Round) unseat(id string) {
	delete(r.players, id)
	r.seats = slices.DeleteFunc(r.seats, func(s string) bool { return s == id })
}

func (r *Round) gameState(p *player.Player) protocol.GameStatePayload {
	return protocol.GameStatePayload{
		PlayerHands: convert.HandsToInfos(p.Hands),
		DealerHand:  convert.DealerUpInfo(r.dealer.Primary()),
		Chips:       p.Chips,
		HandIndex:   p.Cursor(),
		Phase:       r.phase.String(),
	}
}

func (r *Round) cardsPayload(p *player.Player) protocol.CardsPayload {
	payload := protocol.CardsPayload{
		PlayerName:  p.Name,
		PlayerCards: convert.HandsToCards(p.Hands),
	}
	if up, ok := r.dealer.UpCard(); ok {
		payload.DealerCard = up.String()
	}
	return payload
}

func (r *Round) emit(to string, t protocol.MessageType, payload any) {
	r.events = append(r.events, Event{To: to, Type: t, Payload: payload})
}

func (r *Round) broadcast(t protocol.MessageType, payload any, except ...string) {
	r.events = append(r.events, Event{Except: except, Type: t, Payload: payload})
}

func (r *Round) flush() []Event {
	events := r.events
	r.events = nil
	return events
}

func winnerMessage(name string, h, dealer *rule.Hand, outcome rule.Outcome) string {
	value := h.Value()
	switch outcome {
	case rule.OutcomePlayerBlackjack:
		return fmt.Sprintf("%s wins with %s (%d) = Blackjack!", name, h, value)
	case rule.OutcomeDealerBlackjack:
		return fmt.Sprintf("Dealer has blackjack with %s (%d)", dealer, dealer.Value())
	case rule.OutcomeBlackjackPush:
		return fmt.Sprintf("%s pushes with %s (%d)", name, h, value)
	case rule.OutcomePlayerBust:
		return fmt.Sprintf("%s busts with %s (%d)", name, h, value)
	case rule.OutcomePush:
		return fmt.Sprintf("%s ties with %s (%d)", name, h, value)
	case rule.OutcomePlayerLoss:
		return fmt.Sprintf("%s loses with %s (%d)", name, h, value)
	default:
		return fmt.Sprintf("%s wins with %s (%d)", name, h, value)
	}
}
