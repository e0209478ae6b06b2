package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8080
  max_connections: 5000
  allowed_origins:
    - "http://localhost:3000"
    - "https://example.com"
  access_log: false

redis:
  enabled: true
  addr: "redis:6379"
  password: "secret"
  db: 1
  snapshot_ttl: 30

game:
  num_decks: 6
  reshuffle_threshold: 52
  max_hands: 3
  starting_chips: 500
  deal_delay: 0
  action_delay: 2

log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, 5000, cfg.Server.MaxConnections)
	assert.Len(t, cfg.Server.AllowedOrigins, 2)
	assert.False(t, cfg.Server.AccessLog)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 6, cfg.Game.NumDecks)
	assert.Equal(t, 52, cfg.Game.ReshuffleThreshold)
	assert.Equal(t, 3, cfg.Game.MaxHands)
	assert.Equal(t, 500, cfg.Game.StartingChips)
	// 显式 0 关闭下注窗口
	assert.Equal(t, 0, cfg.Game.DealDelay)
	assert.Equal(t, 2, cfg.Game.ActionDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "invalid: yaml: :::"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultMaxConnections, cfg.Server.MaxConnections)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, defaultRedisAddr, cfg.Redis.Addr)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, defaultNumDecks, cfg.Game.NumDecks)
	assert.Equal(t, defaultReshuffleThreshold, cfg.Game.ReshuffleThreshold)
	assert.Equal(t, defaultDealDelay, cfg.Game.DealDelay)
	assert.Equal(t, defaultActionDelay, cfg.Game.ActionDelay)
}

func TestLoad_NormalizesInvalidValues(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `
server:
  port: -1
game:
  num_decks: 0
  deal_delay: -3
  inbox_size: 0
`))
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultNumDecks, cfg.Game.NumDecks)
	assert.Equal(t, 0, cfg.Game.DealDelay)
	assert.Equal(t, defaultInboxSize, cfg.Game.InboxSize)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Game.NumDecks)
	assert.Equal(t, 30, cfg.Game.ReshuffleThreshold)
}

func TestDurationMethods(t *testing.T) {
	t.Parallel()

	game := &GameConfig{DealDelay: 10, ActionDelay: 5}
	assert.Equal(t, 10*time.Second, game.DealDelayDuration())
	assert.Equal(t, 5*time.Second, game.ActionDelayDuration())

	server := &ServerConfig{ShutdownTimeout: 15, MonitorInterval: 30}
	assert.Equal(t, 15*time.Second, server.ShutdownTimeoutDuration())
	assert.Equal(t, 30*time.Second, server.MonitorIntervalDuration())

	redis := &RedisConfig{SnapshotTTL: 60}
	assert.Equal(t, time.Hour, redis.SnapshotTTLDuration())
}

func TestLoadFromEnv(t *testing.T) {
	// Not parallel because it modifies environment variables
	t.Setenv("BJ_SERVER_HOST", "env-host")
	t.Setenv("BJ_SERVER_PORT", "9999")
	t.Setenv("BJ_SERVER_ALLOWED_ORIGINS", "http://a.com,http://b.com")
	t.Setenv("BJ_REDIS_ADDR", "env-redis:6380")
	t.Setenv("BJ_GAME_DEAL_DELAY", "3")
	t.Setenv("BJ_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, `
server:
  port: 8080
game:
  deal_delay: 10
`))
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "env-redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Game.DealDelay)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Setenv("BJ_GAME_MAX_HANDS", "2")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Game.MaxHands)
}

func TestLoadOrDefault_InvalidFile(t *testing.T) {
	t.Parallel()

	_, err := LoadOrDefault(writeConfig(t, "invalid: yaml: :::"))
	assert.Error(t, err)
}
