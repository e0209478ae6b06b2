package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/palemoky/blackjack/internal/config"
	"github.com/palemoky/blackjack/internal/game/room"
	"github.com/palemoky/blackjack/internal/server/handler"
	"github.com/palemoky/blackjack/internal/server/storage"
	"github.com/palemoky/blackjack/internal/types"
)

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	logger      *log.Logger
	clock       quartz.Clock
	redisStore  *storage.RedisStore
	roomManager *room.RoomManager
	handler     *handler.Handler
	upgrader    websocket.Upgrader
	httpServer  *http.Server

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex
}

// Options 可选依赖
type Options struct {
	Logger *log.Logger
	Clock  quartz.Clock // 为空时使用真实时钟
	Redis  *redis.Client
}

// NewServer 创建服务器实例。cfg.Redis.Enabled 且未传入 Redis 客户端时自行连接。
func NewServer(cfg *config.Config, opts Options) (*Server, error) {
	l := opts.Logger
	if l == nil {
		l = log.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	s := &Server{
		config:         cfg,
		logger:         l.WithPrefix("server"),
		clock:          clock,
		clients:        make(map[string]*Client),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}

	rdb := opts.Redis
	if rdb == nil && cfg.Redis.Enabled {
		s.redisStore = storage.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}), cfg.Redis.SnapshotTTLDuration())

		// 测试 Redis 连接
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.redisStore.Ping(ctx); err != nil {
			_ = s.redisStore.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
	} else if rdb != nil {
		s.redisStore = storage.NewRedisStore(rdb, cfg.Redis.SnapshotTTLDuration())
	}

	// store 保持 nil 接口，避免 typed nil
	var store types.Store
	if s.redisStore != nil {
		store = s.redisStore
	}

	s.roomManager = room.NewRoomManager(room.ConfigFrom(cfg.Game), clock, store, l)
	s.handler = handler.NewHandler(handler.HandlerDeps{
		RoomManager:   s.roomManager,
		StartingChips: cfg.Game.StartingChips,
		Logger:        l,
	})

	originChecker := NewOriginChecker(cfg.Server.AllowedOrigins)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker.Check,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("server configured",
		"max_connections", cfg.Server.MaxConnections,
		"redis", s.redisStore != nil,
		"decks", cfg.Game.NumDecks,
		"deal_delay", cfg.Game.DealDelayDuration(),
		"action_delay", cfg.Game.ActionDelayDuration())

	return s, nil
}

// Router 构建 HTTP 路由（含 CORS 与访问日志）
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws/{room}", s.handleWebSocket)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rooms", s.handleRoomList).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room}", s.handleRoomSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/stats/{name}", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", s.handleLeaderboard).Methods(http.MethodGet)

	var h http.Handler = r
	h = cors.New(cors.Options{
		AllowedOrigins: s.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(h)
	if s.config.Server.AccessLog {
		h = handlers.CombinedLoggingHandler(os.Stdout, h)
	}
	return h
}

// Start 启动服务器，阻塞直到关闭
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", "ws://"+s.httpServer.Addr+"/ws/{room}", "cpus", runtime.NumCPU())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RoomManager 房间管理器
func (s *Server) RoomManager() *room.RoomManager {
	return s.roomManager
}
