package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix 环境变量前缀：BJ_SERVER_PORT、BJ_GAME_DEAL_DELAY ...
const envPrefix = "bj"

// 默认值
const (
	defaultHost               = "0.0.0.0"
	defaultPort               = 8000
	defaultMaxConnections     = 1000
	defaultShutdownTimeout    = 10 // 秒
	defaultMonitorInterval    = 60 // 秒
	defaultRedisAddr          = "localhost:6379"
	defaultSnapshotTTL        = 60 // 分钟
	defaultNumDecks           = 2
	defaultReshuffleThreshold = 30
	defaultMaxHands           = 4
	defaultStartingChips      = 1000
	defaultDealDelay          = 10 // 秒
	defaultActionDelay        = 5  // 秒
	defaultInboxSize          = 64
	defaultLogLevel           = "info"
	defaultLogFormat          = "text"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig HTTP / WebSocket 服务器配置
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins" split_words:"true"`
	MaxConnections  int      `yaml:"max_connections" split_words:"true"`
	AccessLog       bool     `yaml:"access_log" split_words:"true"`
	ShutdownTimeout int      `yaml:"shutdown_timeout" split_words:"true"` // 秒
	MonitorInterval int      `yaml:"monitor_interval" split_words:"true"` // 秒，0 关闭
}

// RedisConfig Redis 配置（快照与战绩，不参与牌局状态恢复）
type RedisConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Addr        string `yaml:"addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	SnapshotTTL int    `yaml:"snapshot_ttl" split_words:"true"` // 分钟
}

// GameConfig 牌桌配置
type GameConfig struct {
	NumDecks           int `yaml:"num_decks" split_words:"true"`
	ReshuffleThreshold int `yaml:"reshuffle_threshold" split_words:"true"` // 牌靴低于该张数时换新
	MaxHands           int `yaml:"max_hands" split_words:"true"`           // 每位玩家最多手数
	StartingChips      int `yaml:"starting_chips" split_words:"true"`      // join 未带筹码时的默认值
	DealDelay          int `yaml:"deal_delay" split_words:"true"`          // 秒，下注窗口，0 关闭
	ActionDelay        int `yaml:"action_delay" split_words:"true"`        // 秒，操作节流，0 关闭
	InboxSize          int `yaml:"inbox_size" split_words:"true"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json | logfmt
}

// Addr 监听地址
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ShutdownTimeoutDuration 返回优雅关闭超时时长
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// MonitorIntervalDuration 返回监控日志间隔
func (c *ServerConfig) MonitorIntervalDuration() time.Duration {
	return time.Duration(c.MonitorInterval) * time.Second
}

// SnapshotTTLDuration 返回快照过期时长
func (c *RedisConfig) SnapshotTTLDuration() time.Duration {
	return time.Duration(c.SnapshotTTL) * time.Minute
}

// DealDelayDuration 返回下注窗口时长
func (c *GameConfig) DealDelayDuration() time.Duration {
	return time.Duration(c.DealDelay) * time.Second
}

// ActionDelayDuration 返回操作节流时长
func (c *GameConfig) ActionDelayDuration() time.Duration {
	return time.Duration(c.ActionDelay) * time.Second
}

// Load 加载配置文件，再用 BJ_* 环境变量覆盖
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadOrDefault 文件不存在时使用默认配置（仍然应用环境变量）
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = Default()
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			AllowedOrigins:  []string{"*"},
			MaxConnections:  defaultMaxConnections,
			AccessLog:       true,
			ShutdownTimeout: defaultShutdownTimeout,
			MonitorInterval: defaultMonitorInterval,
		},
		Redis: RedisConfig{
			Addr:        defaultRedisAddr,
			SnapshotTTL: defaultSnapshotTTL,
		},
		Game: GameConfig{
			NumDecks:           defaultNumDecks,
			ReshuffleThreshold: defaultReshuffleThreshold,
			MaxHands:           defaultMaxHands,
			StartingChips:      defaultStartingChips,
			DealDelay:          defaultDealDelay,
			ActionDelay:        defaultActionDelay,
			InboxSize:          defaultInboxSize,
		},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// normalize 修正非法值；延迟允许为 0（关闭）
func (c *Config) normalize() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port <= 0 {
		c.Server.Port = defaultPort
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Server.MaxConnections <= 0 {
		c.Server.MaxConnections = defaultMaxConnections
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Redis.SnapshotTTL <= 0 {
		c.Redis.SnapshotTTL = defaultSnapshotTTL
	}
	if c.Game.NumDecks <= 0 {
		c.Game.NumDecks = defaultNumDecks
	}
	if c.Game.ReshuffleThreshold < 0 {
		c.Game.ReshuffleThreshold = defaultReshuffleThreshold
	}
	if c.Game.StartingChips < 0 {
		c.Game.StartingChips = defaultStartingChips
	}
	if c.Game.DealDelay < 0 {
		c.Game.DealDelay = 0
	}
	if c.Game.ActionDelay < 0 {
		c.Game.ActionDelay = 0
	}
	if c.Game.InboxSize <= 0 {
		c.Game.InboxSize = defaultInboxSize
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}
