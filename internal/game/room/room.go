package room

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/palemoky/blackjack/internal/config"
	"github.com/palemoky/blackjack/internal/game/card"
	"github.com/palemoky/blackjack/internal/game/round"
	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/types"
)

// Config 房间参数
type Config struct {
	NumDecks           int
	ReshuffleThreshold int           // 牌靴剩余低于该张数时换新，<= 0 不换
	MaxHands           int           // 每位玩家最多手数
	DealDelay          time.Duration // 下注窗口，0 关闭
	ActionDelay        time.Duration // 操作节流，0 关闭
	InboxSize          int

	// NewShoe 生成新牌靴，为空时按 NumDecks 随机洗牌
	NewShoe func() *card.Shoe
}

// ConfigFrom 由牌桌配置生成房间参数
func ConfigFrom(gc config.GameConfig) Config {
	return Config{
		NumDecks:           gc.NumDecks,
		ReshuffleThreshold: gc.ReshuffleThreshold,
		MaxHands:           gc.MaxHands,
		DealDelay:          gc.DealDelayDuration(),
		ActionDelay:        gc.ActionDelayDuration(),
		InboxSize:          gc.InboxSize,
	}
}

func (c Config) shoe() *card.Shoe {
	if c.NewShoe != nil {
		return c.NewShoe()
	}
	return card.NewShoe(c.NumDecks, nil)
}

// Action 一条已校验的玩家指令
type Action struct {
	Type  protocol.MessageType
	Name  string // join
	Chips int    // join
	Bet   int    // deal
	Hand  int    // hit / stand / split / double
}

// command 房间收件箱中的一条指令
type command struct {
	kind   string
	origin types.ClientInterface
	fn     func()
}

// Room 一张牌桌
//
// 牌局状态只由房间协程访问：所有外部调用都投递到收件箱，按到达顺序逐条执行。
type Room struct {
	name   string
	cfg    Config
	clock  quartz.Clock
	store  types.Store
	logger *log.Logger

	inbox     chan command
	done      chan struct{}
	closeOnce sync.Once

	// 以下字段只在房间协程中访问
	round   *round.Round
	clients map[string]types.ClientInterface
	order   []string // 连接顺序，广播按此顺序投递
	gate    gateState
	timer   *quartz.Timer
	pending []pendingAction

	// 供房间列表读取
	mu   sync.RWMutex
	info protocol.RoomListItem
}

// New 创建房间并启动房间协程。store 可为 nil。
func New(name string, cfg Config, clock quartz.Clock, store types.Store, logger *log.Logger) *Room {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = 64
	}

	r := &Room{
		name:    name,
		cfg:     cfg,
		clock:   clock,
		store:   store,
		logger:  logger.WithPrefix("room").With("room", name),
		inbox:   make(chan command, cfg.InboxSize),
		done:    make(chan struct{}),
		round:   round.New(round.Config{MaxHands: cfg.MaxHands}, cfg.shoe()),
		clients: make(map[string]types.ClientInterface),
	}
	r.refreshInfo()

	go r.run()
	return r
}

// Name 房间名
func (r *Room) Name() string { return r.name }

// Info 房间概况（最近一次操作后的状态）
func (r *Room) Info() protocol.RoomListItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info := r.info
	info.Players = append([]string(nil), r.info.Players...)
	return info
}

// InRound 是否有进行中的牌局
func (r *Room) InRound() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.info.Phase != round.PhaseAwaitingBets.String()
}

// Connect 连接进入房间
// 必须快速返回
func (r *Room) Connect(client types.ClientInterface) bool {
	return r.post(command{kind: "connect", origin: client, fn: func() { r.connect(client) }})
}

// Disconnect 连接离开房间
func (r *Room) Disconnect(client types.ClientInterface) bool {
	return r.post(command{kind: "disconnect", fn: func() { r.disconnect(client) }})
}

// Submit 投递玩家指令
func (r *Room) Submit(client types.ClientInterface, action Action) bool {
	return r.post(command{kind: string(action.Type), origin: client, fn: func() { r.submit(client, action) }})
}

// Close 停止房间协程
func (r *Room) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

// Done 房间协程停止时关闭
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// post 投递指令；房间已关闭时返回 false
func (r *Room) post(cmd command) bool {
	select {
	case <-r.done:
		return false
	default:
	}

	select {
	case r.inbox <- cmd:
		return true
	case <-r.done:
		return false
	}
}

func (r *Room) run() {
	r.logger.Debug("room loop started")
	for {
		select {
		case cmd := <-r.inbox:
			r.exec(cmd)
		case <-r.done:
			r.stopGate()
			r.logger.Debug("room loop stopped")
			return
		}
	}
}

// exec 执行一条指令，panic 不会终止房间协程
func (r *Room) exec(cmd command) {
	defer func() {
		if rec := recover(); rec != nil {
			r.recovered(rec, cmd.kind, cmd.origin)
		}
	}()
	cmd.fn()
}
