package protocol

// 错误码
const (
	ErrCodeUnknown      = 1000
	ErrCodeInvalidMsg   = 1001
	ErrCodeInvalidType  = 1002
	ErrCodeNotJoined    = 2001
	ErrCodeInvalidRoom  = 2002
	ErrCodeNoChips      = 3001
	ErrCodeInvalidHand  = 3002
	ErrCodeNotSplitable = 3003
	ErrCodeHandFinished = 3004
	ErrCodeAlreadyBet   = 3005
	ErrCodeRoundActive  = 3006
	ErrCodeNoRound      = 3007
	ErrCodeMaxHands     = 3008
	ErrCodeInvalidBet   = 3009
	ErrCodeShoeEmpty    = 5001
	ErrCodeServerClosed = 5003
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:      "Something went wrong",
	ErrCodeInvalidMsg:   "Invalid message",
	ErrCodeInvalidType:  "Invalid action type",
	ErrCodeNotJoined:    "You must join the table first",
	ErrCodeInvalidRoom:  "Invalid room name",
	ErrCodeNoChips:      "You don't have enough chips",
	ErrCodeInvalidHand:  "Invalid hand index",
	ErrCodeNotSplitable: "This hand cannot be split",
	ErrCodeHandFinished: "This hand is already finished",
	ErrCodeAlreadyBet:   "You already placed a bet this round",
	ErrCodeRoundActive:  "A round is in progress, wait for the next deal",
	ErrCodeNoRound:      "No active round, place a bet first",
	ErrCodeMaxHands:     "Maximum number of hands reached",
	ErrCodeInvalidBet:   "Bet cannot be negative",
	ErrCodeShoeEmpty:    "Something went wrong",
	ErrCodeServerClosed: "Server is shutting down",
}
