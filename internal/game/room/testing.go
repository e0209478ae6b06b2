//go:build !production

package room

import (
	"context"

	"github.com/palemoky/blackjack/internal/apperrors"
)

// Sync 等待此前投递的指令全部执行完（测试用）
func (r *Room) Sync(ctx context.Context) error {
	done := make(chan struct{})
	if !r.post(command{kind: "sync", fn: func() { close(done) }}) {
		return apperrors.ErrServerClosed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddRoomForTest 添加房间用于测试
func (rm *RoomManager) AddRoomForTest(room *Room) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.rooms[room.Name()] = room
}
