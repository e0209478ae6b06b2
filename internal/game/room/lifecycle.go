package room

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/game/round"
	"github.com/palemoky/blackjack/internal/logger"
	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/protocol/codec"
	"github.com/palemoky/blackjack/internal/types"
)

// storeTimeout 异步写 Redis 的超时
const storeTimeout = 5 * time.Second

// connect 登记连接并回复 connection_good
func (r *Room) connect(c types.ClientInterface) {
	id := c.GetID()
	if _, ok := r.clients[id]; !ok {
		r.order = append(r.order, id)
	}
	r.clients[id] = c

	c.SendMessage(codec.MustNewMessage(protocol.MsgConnectionGood, protocol.ConnectionGoodPayload{
		Message:        fmt.Sprintf("You are now connected to room %s", r.name),
		ChannelName:    id,
		Room:           r.name,
		CardsRemaining: r.round.Shoe().Remaining(),
	}))

	r.logger.Info("client connected", "client", id, "connections", len(r.clients))
	r.refreshInfo()
}

// disconnect 注销连接。本局中的玩家未结束的手牌自动停牌。
func (r *Room) disconnect(c types.ClientInterface) {
	id := c.GetID()
	if _, ok := r.clients[id]; !ok {
		return
	}
	delete(r.clients, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	r.pending = slices.DeleteFunc(r.pending, func(p pendingAction) bool { return p.client.GetID() == id })

	events, err := r.round.Leave(id)
	r.deliver(events)
	if err != nil {
		r.logger.Error("leave failed", "client", id, "err", err)
	}
	r.afterAction()
	r.relaxGate()

	r.logger.Info("client disconnected", "client", id, "connections", len(r.clients))
}

// submit 执行或缓存一条玩家指令
func (r *Room) submit(c types.ClientInterface, a Action) {
	if _, ok := r.clients[c.GetID()]; !ok {
		return
	}

	// 入座不经过闸门
	if a.Type == protocol.MsgJoin {
		r.execute(c, a)
		return
	}

	switch r.gate {
	case gateArmed:
		r.pending = append(r.pending, pendingAction{client: c, action: a, received: r.clock.Now()})
		return
	case gateIdle:
		delay := r.cfg.ActionDelay
		if a.Type == protocol.MsgDeal {
			delay = r.cfg.DealDelay
		}
		if delay > 0 {
			r.pending = append(r.pending, pendingAction{client: c, action: a, received: r.clock.Now()})
			r.armGate(delay)
			return
		}
	}

	r.execute(c, a)
	r.relaxGate()
}

// armGate 开始计时，到点后经由收件箱放行缓存的指令
func (r *Room) armGate(d time.Duration) {
	r.gate = gateArmed
	r.timer = r.clock.AfterFunc(d, func() {
		r.post(command{kind: "gate", fn: r.openGate})
	}, "room", "gate")
	r.logger.Debug("gate armed", "delay", d)
}

// openGate 计时结束，按到达顺序执行缓存的指令
func (r *Room) openGate() {
	if r.gate != gateArmed {
		return
	}
	r.gate = gateOpen
	r.timer = nil

	pending := r.pending
	r.pending = nil
	now := r.clock.Now()

	var last *pendingAction
	r.round.BeginBatch()
	for i, p := range pending {
		if _, ok := r.clients[p.client.GetID()]; !ok {
			continue
		}
		r.logger.Debug("released action", "action", p.action.Type, "client", p.client.GetID(), "waited", now.Sub(p.received))
		r.execute(p.client, p.action)
		last = &pending[i]
	}
	r.closeBatch(last)
	r.relaxGate()
}

// closeBatch 整批执行完后才让庄家行动；庄家回合的错误回复给本批最后一个发起连接
func (r *Room) closeBatch(last *pendingAction) {
	defer func() {
		if rec := recover(); rec != nil {
			r.recovered(rec, "gate", nil)
		}
	}()

	events, err := r.round.EndBatch()
	r.deliver(events)
	if err != nil {
		if last != nil {
			r.reportError(last.client, last.action.Type, err)
		} else {
			r.logger.Error("dealer turn failed", "err", err)
		}
	}
	r.afterAction()
}

// relaxGate 牌桌回到等待下注时，下一局重新计时
func (r *Room) relaxGate() {
	if r.gate == gateOpen && r.round.Phase() == round.PhaseAwaitingBets {
		r.gate = gateIdle
	}
}

func (r *Room) stopGate() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.pending = nil
	r.gate = gateIdle
}

// execute 对牌局执行一条指令并投递产生的事件
func (r *Room) execute(c types.ClientInterface, a Action) {
	defer func() {
		if rec := recover(); rec != nil {
			r.recovered(rec, string(a.Type), c)
		}
	}()

	events, err := r.apply(c.GetID(), a)
	r.deliver(events)
	if err != nil {
		r.reportError(c, a.Type, err)
	}
	r.afterAction()
}

func (r *Room) apply(id string, a Action) ([]round.Event, error) {
	switch a.Type {
	case protocol.MsgJoin:
		return r.round.Join(id, a.Name, a.Chips)
	case protocol.MsgDeal:
		return r.round.Deal(id, a.Bet)
	case protocol.MsgHit:
		return r.round.Hit(id, a.Hand)
	case protocol.MsgStand:
		return r.round.Stand(id, a.Hand)
	case protocol.MsgSplit:
		return r.round.Split(id, a.Hand)
	case protocol.MsgDouble:
		return r.round.Double(id, a.Hand)
	}
	return nil, apperrors.ErrInvalidAction
}

// deliver 事件扇出：定向事件只发给目标连接，广播发给房间内所有连接（排除 Except）
func (r *Room) deliver(events []round.Event) {
	for _, e := range events {
		msg, err := codec.NewMessage(e.Type, e.Payload)
		if err != nil {
			r.logger.Error("encode event failed", "type", e.Type, "err", err)
			continue
		}

		if !e.IsBroadcast() {
			if c, ok := r.clients[e.To]; ok {
				c.SendMessage(msg)
			}
			continue
		}
		for _, id := range r.order {
			if e.Skips(id) {
				continue
			}
			r.clients[id].SendMessage(msg)
		}
	}
}

// reportError 错误只回复给发起连接
func (r *Room) reportError(c types.ClientInterface, t protocol.MessageType, err error) {
	var gameErr *apperrors.GameError
	switch {
	case errors.Is(err, apperrors.ErrShoeExhausted):
		r.logger.Error("shoe exhausted", "action", t, "client", c.GetID(), "err", err)
	case !errors.As(err, &gameErr):
		r.logger.Error("action failed", "action", t, "client", c.GetID(), "err", err)
	default:
		r.logger.Debug("action rejected", "action", t, "client", c.GetID(), "err", err)
	}
	c.SendMessage(codec.NewErrorFromErr(err))
}

// recovered 记录 panic，发起连接收到通用错误，房间继续运行
func (r *Room) recovered(rec any, kind string, origin types.ClientInterface) {
	logger.LogPanic(r.logger, rec, "room", r.name, "action", kind)
	if origin != nil {
		origin.SendMessage(codec.NewErrorMessage(protocol.ErrCodeUnknown))
	}
}

// afterAction 每条指令之后：存档结算结果、检查牌靴水位、刷新房间概况
func (r *Room) afterAction() {
	if results := r.round.TakeResults(); len(results) > 0 {
		r.persist(results)
	}
	r.reshuffle()
	r.refreshInfo()
}

// reshuffle 牌靴低于水位时换一副新靴
func (r *Room) reshuffle() {
	remaining := r.round.Shoe().Remaining()
	if remaining >= r.cfg.ReshuffleThreshold {
		return
	}
	r.round.SetShoe(r.cfg.shoe())
	r.logger.Info("shoe reshuffled", "remaining", remaining, "cards", r.round.Shoe().Remaining())
}

// persist 异步写入快照与战绩
func (r *Room) persist(results []round.Result) {
	if r.store == nil {
		return
	}

	data := ToRoomData(r.name, r.round.Snapshot(), len(r.clients), r.clock.Now())
	hands := ToHandResults(results)
	store, l := r.store, r.logger

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := store.SaveRoom(ctx, data); err != nil {
			l.Warn("save room failed", "err", err)
		}
		if err := store.RecordResults(ctx, hands); err != nil {
			l.Warn("record results failed", "err", err)
		}
	}()
}

func (r *Room) refreshInfo() {
	players := make([]string, 0)
	for _, p := range r.round.Players() {
		players = append(players, p.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.info = protocol.RoomListItem{
		Room:           r.name,
		Phase:          r.round.Phase().String(),
		Players:        players,
		Connections:    len(r.clients),
		CardsRemaining: r.round.Shoe().Remaining(),
	}
}
