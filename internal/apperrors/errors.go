package apperrors

import (
	"github.com/palemoky/blackjack/internal/protocol"
)

// GameError 游戏错误（牌局、房间与连接层共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrMalformedMessage  = newError(protocol.ErrCodeInvalidMsg)
	ErrInvalidAction     = newError(protocol.ErrCodeInvalidType)
	ErrNotJoined         = newError(protocol.ErrCodeNotJoined)
	ErrInvalidRoom       = newError(protocol.ErrCodeInvalidRoom)
	ErrInsufficientChips = newError(protocol.ErrCodeNoChips)
	ErrInvalidBet        = newError(protocol.ErrCodeInvalidBet)
	ErrInvalidHandIndex  = newError(protocol.ErrCodeInvalidHand)
	ErrNotSplitable      = newError(protocol.ErrCodeNotSplitable)
	ErrHandFinished      = newError(protocol.ErrCodeHandFinished)
	ErrAlreadyBet        = newError(protocol.ErrCodeAlreadyBet)
	ErrRoundInProgress   = newError(protocol.ErrCodeRoundActive)
	ErrNoActiveRound     = newError(protocol.ErrCodeNoRound)
	ErrMaxHands          = newError(protocol.ErrCodeMaxHands)
	ErrShoeExhausted     = newError(protocol.ErrCodeShoeEmpty)
	ErrServerClosed      = newError(protocol.ErrCodeServerClosed)

	// ErrInsufficientChipsDouble 加倍时筹码不足（与下注不足同码，提示不同）
	ErrInsufficientChipsDouble = &GameError{Code: protocol.ErrCodeNoChips, Message: "You don't have enough chips to double down"}
)
