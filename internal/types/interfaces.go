package types

import (
	"context"

	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/server/storage"
)

// ClientInterface 定义客户端接口（用于打破 room 与 server 之间的循环依赖）
type ClientInterface interface {
	GetID() string
	GetRoom() string
	SendMessage(msg *protocol.Message)
	Close()
}

// Store 牌局观测数据的持久化接口
type Store interface {
	SaveRoom(ctx context.Context, data *storage.RoomData) error
	RecordResults(ctx context.Context, results []storage.HandResult) error
}
