package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/game/room"
)

// handleWebSocket 处理 /ws/{room} 上的 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientIP := GetClientIP(r)
	name := mux.Vars(r)["room"]

	// 维护模式检查（最优先）
	if s.IsMaintenanceMode() {
		s.logger.Info("maintenance mode, connection rejected", "ip", clientIP)
		http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
		return
	}

	if !room.ValidName(name) {
		http.Error(w, "Invalid room name", http.StatusBadRequest)
		return
	}

	// 连接数限制检查
	select {
	case s.semaphore <- struct{}{}:
	default:
		s.logger.Warn("max connections reached", "max", s.maxConnections, "ip", clientIP)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}
	release := func() { <-s.semaphore }

	rm, err := s.roomManager.GetOrCreate(name)
	if err != nil {
		release()
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrServerClosed) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		release()
		s.logger.Warn("websocket upgrade failed", "ip", clientIP, "err", err)
		return
	}

	client := NewClient(s, conn, rm)
	client.IP = clientIP

	// 入房间之后再启动读协程
	if !rm.Connect(client) {
		release()
		client.Close()
		_ = conn.Close()
		return
	}
	s.registerClient(client)
	client.logger.Info("connected", "ip", clientIP)

	// 断开时释放信号量
	go func() {
		defer release()
		client.ReadPump()
	}()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		client.logger.Info("disconnected")
	}
}

// GetOnlineCount 获取在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}
