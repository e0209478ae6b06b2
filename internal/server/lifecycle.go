package server

import (
	"context"
	"runtime"
	"time"
)

// Monitor 定期记录服务器状态，ctx 结束时返回
func (s *Server) Monitor(ctx context.Context) {
	interval := s.config.Server.MonitorIntervalDuration()
	if interval <= 0 {
		return
	}

	ticker := s.clock.NewTicker(interval, "server", "monitor")
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			s.logger.Info("stats",
				"online", s.GetOnlineCount(),
				"connections", len(s.semaphore),
				"max_connections", s.maxConnections,
				"rooms", s.roomManager.GetRoomCount(),
				"active_rounds", s.roomManager.GetActiveGamesCount(),
				"goroutines", runtime.NumGoroutine(),
				"alloc_mb", float64(m.Alloc)/1024/1024)
		}
	}
}

// EnterMaintenanceMode 进入维护模式：拒绝新连接
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	s.logger.Info("maintenance mode: new connections rejected")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown 优雅关闭：拒绝新连接，等待进行中的牌局结束（最多 timeout），然后关闭
func (s *Server) GracefulShutdown(ctx context.Context, timeout time.Duration) error {
	s.EnterMaintenanceMode()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := s.clock.NewTicker(time.Second, "server", "shutdown")
	defer ticker.Stop()

	for {
		active := s.roomManager.GetActiveGamesCount()
		if active == 0 {
			s.logger.Info("no active rounds, shutting down")
			break
		}
		s.logger.Info("waiting for rounds to finish", "active", active)

		select {
		case <-ctx.Done():
			s.logger.Warn("shutdown timeout, closing with active rounds", "active", s.roomManager.GetActiveGamesCount())
			return s.Shutdown(context.Background())
		case <-ticker.C:
		}
	}
	return s.Shutdown(ctx)
}

// Shutdown 关闭 HTTP 服务、所有连接、房间与 Redis
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	// 关闭所有客户端连接
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	s.roomManager.Close()

	if s.redisStore != nil {
		_ = s.redisStore.Close()
	}

	s.logger.Info("server stopped")
	return err
}
