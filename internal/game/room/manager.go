package room

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/types"
)

// roomNamePattern 房间名只允许字母、数字、下划线
var roomNamePattern = regexp.MustCompile(`^\w+$`)

// ValidName 房间名是否合法
func ValidName(name string) bool {
	return len(name) <= 64 && roomNamePattern.MatchString(name)
}

// RoomManager 房间管理器
//
// 房间在第一次被引用时创建，随进程存活。
type RoomManager struct {
	cfg    Config
	clock  quartz.Clock
	store  types.Store
	logger *log.Logger

	rooms  map[string]*Room
	closed bool
	mu     sync.RWMutex
}

// NewRoomManager 创建房间管理器。store 可为 nil（不存档）。
func NewRoomManager(cfg Config, clock quartz.Clock, store types.Store, logger *log.Logger) *RoomManager {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RoomManager{
		cfg:    cfg,
		clock:  clock,
		store:  store,
		logger: logger,
		rooms:  make(map[string]*Room),
	}
}

// GetOrCreate 获取房间，不存在时创建
func (rm *RoomManager) GetOrCreate(name string) (*Room, error) {
	if !ValidName(name) {
		return nil, apperrors.ErrInvalidRoom
	}

	rm.mu.RLock()
	room, ok := rm.rooms[name]
	closed := rm.closed
	rm.mu.RUnlock()
	if ok {
		return room, nil
	}
	if closed {
		return nil, apperrors.ErrServerClosed
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.closed {
		return nil, apperrors.ErrServerClosed
	}
	if room, ok := rm.rooms[name]; ok {
		return room, nil
	}

	room = New(name, rm.cfg, rm.clock, rm.store, rm.logger)
	rm.rooms[name] = room
	rm.logger.Info("room created", "room", name)
	return room, nil
}

// GetRoom 获取房间，不存在时返回 nil
func (rm *RoomManager) GetRoom(name string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[name]
}

// GetRoomList 按房间名排序的房间列表
func (rm *RoomManager) GetRoomList() []protocol.RoomListItem {
	rm.mu.RLock()
	rooms := make([]*Room, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		rooms = append(rooms, room)
	}
	rm.mu.RUnlock()

	items := make([]protocol.RoomListItem, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, room.Info())
	}
	slices.SortFunc(items, func(a, b protocol.RoomListItem) int {
		return strings.Compare(a.Room, b.Room)
	})
	return items
}

// GetRoomCount 房间数量
func (rm *RoomManager) GetRoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// GetActiveGamesCount 有牌局进行中的房间数量
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	count := 0
	for _, room := range rm.rooms {
		if room.InRound() {
			count++
		}
	}
	return count
}

// Close 关闭所有房间，之后不再创建新房间
func (rm *RoomManager) Close() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.closed = true
	for _, room := range rm.rooms {
		room.Close()
	}
	rm.logger.Info("rooms closed", "count", len(rm.rooms))
}
