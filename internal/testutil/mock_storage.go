//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/blackjack/internal/server/storage"
)

// MockStore 实现 types.Store 的 mock
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveRoom(ctx context.Context, data *storage.RoomData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockStore) RecordResults(ctx context.Context, results []storage.HandResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}
