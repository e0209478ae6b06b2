package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/blackjack/internal/protocol"
)

const (
	// Redis key 前缀
	roomKeyPrefix  = "bj:room:"
	statsKeyPrefix = "bj:stats:"
	leaderboardKey = "bj:leaderboard:net"

	// 默认快照过期时间
	defaultSnapshotTTL = time.Hour
)

// 战绩 hash 字段
const (
	fieldHands      = "hands"
	fieldWins       = "wins"
	fieldLosses     = "losses"
	fieldPushes     = "pushes"
	fieldBlackjacks = "blackjacks"
	fieldBusts      = "busts"
	fieldNet        = "net_chips"
)

// RoomData 房间快照（只用于观测，不会被恢复）
type RoomData struct {
	Room           string            `json:"room"`
	RoundID        string            `json:"round_id,omitempty"`
	Phase          string            `json:"phase"`
	CardsRemaining int               `json:"cards_remaining"`
	Connections    int               `json:"connections"`
	Dealer         protocol.HandInfo `json:"dealer"`
	Seats          []SeatData        `json:"seats"`
	SavedAt        int64             `json:"saved_at"`
}

// SeatData 座位数据
type SeatData struct {
	Name     string              `json:"name"`
	Chips    int                 `json:"chips"`
	Wager    int                 `json:"wager"`
	InRound  bool                `json:"in_round"`
	Finished int                 `json:"finished"`
	Hands    []protocol.HandInfo `json:"hands"`
}

// HandResult 单手结算，用于累计战绩
type HandResult struct {
	Name      string
	Outcome   string // rule.Outcome 名称
	Win       bool
	Push      bool
	Blackjack bool // 玩家黑杰克获胜
	Bust      bool // 玩家爆牌
	Net       int  // 派彩 - 注码
}

// RedisStore Redis 存储
type RedisStore struct {
	client      *redis.Client
	snapshotTTL time.Duration
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, snapshotTTL time.Duration) *RedisStore {
	if snapshotTTL <= 0 {
		snapshotTTL = defaultSnapshotTTL
	}
	return &RedisStore{client: client, snapshotTTL: snapshotTTL}
}

// Ping 检查连接
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// Close 关闭连接
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

// --- 房间快照 ---

// SaveRoom 保存房间快照
func (rs *RedisStore) SaveRoom(ctx context.Context, data *RoomData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", data.Room, err)
	}
	return rs.client.Set(ctx, roomKeyPrefix+data.Room, jsonData, rs.snapshotTTL).Err()
}

// LoadRoom 读取房间快照，不存在时返回 nil, nil
func (rs *RedisStore) LoadRoom(ctx context.Context, room string) (*RoomData, error) {
	data, err := rs.client.Get(ctx, roomKeyPrefix+room).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", room, err)
	}
	return &roomData, nil
}

// --- 战绩 ---

// RecordResults 累计一局的结算结果
func (rs *RedisStore) RecordResults(ctx context.Context, results []HandResult) error {
	if len(results) == 0 {
		return nil
	}

	pipe := rs.client.TxPipeline()
	for _, r := range results {
		key := statsKeyPrefix + r.Name
		pipe.HIncrBy(ctx, key, fieldHands, 1)
		switch {
		case r.Win:
			pipe.HIncrBy(ctx, key, fieldWins, 1)
		case r.Push:
			pipe.HIncrBy(ctx, key, fieldPushes, 1)
		default:
			pipe.HIncrBy(ctx, key, fieldLosses, 1)
		}
		if r.Blackjack {
			pipe.HIncrBy(ctx, key, fieldBlackjacks, 1)
		}
		if r.Bust {
			pipe.HIncrBy(ctx, key, fieldBusts, 1)
		}
		pipe.HIncrBy(ctx, key, fieldNet, int64(r.Net))
		pipe.ZIncrBy(ctx, leaderboardKey, float64(r.Net), r.Name)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetStats 读取玩家战绩，没有记录时返回 nil, nil
func (rs *RedisStore) GetStats(ctx context.Context, name string) (*protocol.StatsResult, error) {
	data, err := rs.client.HGetAll(ctx, statsKeyPrefix+name).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &protocol.StatsResult{
		Name:       name,
		Hands:      atoi(data[fieldHands]),
		Wins:       atoi(data[fieldWins]),
		Losses:     atoi(data[fieldLosses]),
		Pushes:     atoi(data[fieldPushes]),
		Blackjacks: atoi(data[fieldBlackjacks]),
		Busts:      atoi(data[fieldBusts]),
		NetChips:   atoi(data[fieldNet]),
	}, nil
}

// GetLeaderboard 按净赢筹码排名
func (rs *RedisStore) GetLeaderboard(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	results, err := rs.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]protocol.LeaderboardEntry, 0, len(results))
	for i, z := range results {
		name, _ := z.Member.(string)
		entries = append(entries, protocol.LeaderboardEntry{
			Rank:     i + 1,
			Name:     name,
			NetChips: int(z.Score),
		})
	}
	return entries, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
