//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/blackjack/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，不使用 testify（用于不需要断言调用的测试）
//
// 房间协程与测试协程会同时访问，所有字段经由方法读取。
type SimpleClient struct {
	ID       string
	RoomName string

	mu       sync.Mutex
	messages []*protocol.Message
	closed   bool
}

func (m *SimpleClient) GetID() string   { return m.ID }
func (m *SimpleClient) GetRoom() string { return m.RoomName }

func (m *SimpleClient) SendMessage(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *SimpleClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Messages 已收到消息的副本
func (m *SimpleClient) Messages() []*protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*protocol.Message(nil), m.messages...)
}

// ByType 按类型筛选已收到的消息
func (m *SimpleClient) ByType(t protocol.MessageType) []*protocol.Message {
	var result []*protocol.Message
	for _, msg := range m.Messages() {
		if msg.Type == t {
			result = append(result, msg)
		}
	}
	return result
}

// Last 最后一条指定类型的消息，没有时返回 nil
func (m *SimpleClient) Last(t protocol.MessageType) *protocol.Message {
	msgs := m.ByType(t)
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

// Reset 清空已收到的消息
func (m *SimpleClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}

// Closed 是否已被关闭
func (m *SimpleClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
