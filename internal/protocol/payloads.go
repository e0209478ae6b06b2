package protocol

// --- 客户端请求 Payloads ---

// JoinPayload 入座请求
type JoinPayload struct {
	Name  string `json:"name"`
	Chips *int   `json:"chips"`
}

// DealPayload 下注请求
type DealPayload struct {
	Bet  *int `json:"bet"`
	Hand int  `json:"hand"`
}

// HandActionPayload 要牌/停牌/分牌/加倍请求
type HandActionPayload struct {
	Hand int `json:"hand"`
}

// --- 服务端响应 Payloads ---

// ConnectionGoodPayload 连接成功响应
type ConnectionGoodPayload struct {
	Message        string `json:"message"`
	ChannelName    string `json:"channel_name"` // 连接 ID
	Room           string `json:"room"`
	CardsRemaining int    `json:"cards_remaining"`
}

// JoinedPayload 入座成功响应（仅发给自己）
type JoinedPayload struct {
	Name  string `json:"name"`
	Chips int    `json:"chips"`
}

// PlayerJoinPayload 玩家入座广播
type PlayerJoinPayload struct {
	PlayerName string `json:"player_name"`
}

// GameStatePayload 玩家视角的牌局状态
type GameStatePayload struct {
	PlayerHands []HandInfo `json:"player_hands"`
	DealerHand  HandInfo   `json:"dealer_hand"` // 结算前只含明牌
	Chips       int        `json:"chips"`
	HandIndex   int        `json:"hand_index"`
	Phase       string     `json:"phase"`
}

// CardsPayload 亮牌广播
type CardsPayload struct {
	PlayerName  string     `json:"player_name"`
	PlayerCards [][]string `json:"player_cards"`
	DealerCard  string     `json:"dealer_card"`
}

// SplitablePayload 可分牌通知
type SplitablePayload struct {
	HandIndex int `json:"hand_index"`
}

// HandIndexPayload 手牌游标通知
type HandIndexPayload struct {
	HandIndex int `json:"hand_index"`
}

// WaitForPlayersPayload 等待其他玩家
type WaitForPlayersPayload struct {
	Finished int `json:"finished"` // 已完成的手数
	Total    int `json:"total"`    // 本局总手数
}

// WinnerPayload 单手结算结果（仅发给该手的玩家）
type WinnerPayload struct {
	Message   string `json:"message"`
	HandIndex int    `json:"hand_index"`
	Outcome   string `json:"outcome"`
	Payout    int    `json:"payout"`
}

// EndGamePayload 终局通知
type EndGamePayload struct {
	DealerCards     []string `json:"dealer_cards"`
	DealerValue     int      `json:"dealer_value"`
	DealerBusted    bool     `json:"dealer_busted"`
	DealerBlackjack bool     `json:"dealer_blackjack"`
	PlayerChips     *int     `json:"player_chips,omitempty"` // 旁观者没有

}

// ResetPayload 新一局通知
type ResetPayload struct {
	CardsRemaining int `json:"cards_remaining"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// HandInfo 手牌信息
type HandInfo struct {
	Cards     []string `json:"cards"`
	Value     int      `json:"value"`
	Busted    bool     `json:"busted"`
	Blackjack bool     `json:"blackjack"`
	Soft      bool     `json:"soft,omitempty"` // 仍有按 11 计的 A
	Stake     int      `json:"stake,omitempty"`
	Finished  bool     `json:"finished,omitempty"`
}

// --- HTTP API ---

// RoomListItem 房间列表项
type RoomListItem struct {
	Room           string   `json:"room"`
	Phase          string   `json:"phase"`
	Players        []string `json:"players"`
	Connections    int      `json:"connections"`
	CardsRemaining int      `json:"cards_remaining"`
}

// StatsResult 玩家战绩
type StatsResult struct {
	Name       string `json:"name"`
	Hands      int    `json:"hands"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Pushes     int    `json:"pushes"`
	Blackjacks int    `json:"blackjacks"`
	Busts      int    `json:"busts"`
	NetChips   int    `json:"net_chips"`
}

// LeaderboardEntry 排行榜条目（按净赢筹码）
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	NetChips int    `json:"net_chips"`
}
