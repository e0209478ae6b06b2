package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/palemoky/blackjack/internal/config"
	"github.com/palemoky/blackjack/internal/logger"
	"github.com/palemoky/blackjack/internal/server"
)

var CLI struct {
	Config   string `short:"c" default:"configs/config.yaml" help:"配置文件路径"`
	Host     string `help:"监听地址（覆盖配置）"`
	Port     int    `short:"p" help:"监听端口（覆盖配置）"`
	LogLevel string `short:"l" help:"日志级别（覆盖配置）"`
	Redis    string `help:"Redis 地址，设置后启用快照与战绩（覆盖配置）"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("blackjack-server"),
		kong.Description("多房间 21 点 WebSocket 服务器"),
	)

	// 加载配置
	cfg, err := config.LoadOrDefault(CLI.Config)
	if err != nil {
		log.Error("加载配置文件失败", "path", CLI.Config, "err", err)
		kctx.Exit(1)
	}
	applyOverrides(cfg)

	l, err := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Error("初始化日志失败", "err", err)
		kctx.Exit(1)
	}

	// 创建服务器
	srv, err := server.NewServer(cfg, server.Options{Logger: l})
	if err != nil {
		l.Error("创建服务器失败", "err", err)
		kctx.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)

	g.Go(func() error {
		srv.Monitor(gctx)
		return nil
	})

	// 优雅关闭：收到信号或服务异常退出时触发
	g.Go(func() error {
		<-gctx.Done()
		l.Info("正在关闭服务器...")
		return srv.GracefulShutdown(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	})

	l.Info("🃏 21 点服务器启动中...", "rooms", "/ws/{room}")
	if err := g.Wait(); err != nil {
		l.Error("服务器异常退出", "err", err)
		os.Exit(1)
	}
}

// applyOverrides 命令行参数覆盖配置
func applyOverrides(cfg *config.Config) {
	if CLI.Host != "" {
		cfg.Server.Host = CLI.Host
	}
	if CLI.Port > 0 {
		cfg.Server.Port = CLI.Port
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.Redis != "" {
		cfg.Redis.Enabled = true
		cfg.Redis.Addr = CLI.Redis
	}
}
