// Package model defines the core types and interfaces for the UI.
package model

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/transport"
)

// Phase represents where the local player is at the table.
type Phase int

const (
	PhaseConnecting Phase = iota
	PhaseSpectating       // 已连接，未入座
	PhaseBetting          // 已入座，等待下注
	PhasePlaying          // 有待行动的手牌
	PhaseWaiting          // 自己的手牌已结束，等待其他玩家
	PhaseDisconnected
)

var phaseNames = map[Phase]string{
	PhaseConnecting:   "connecting",
	PhaseSpectating:   "spectating",
	PhaseBetting:      "betting",
	PhasePlaying:      "playing",
	PhaseWaiting:      "waiting",
	PhaseDisconnected: "disconnected",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// --- Tea Messages ---

// ServerMessage wraps a protocol message for tea.Msg.
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg indicates successful connection.
type ConnectedMsg struct{}

// ConnectionErrorMsg indicates a connection error.
type ConnectionErrorMsg struct {
	Err error
}

// ClearErrorMsg clears error message.
type ClearErrorMsg struct{}

// --- Model Interface ---

// Model is the main interface for OnlineModel, used by handler/view/input packages.
type Model interface {
	Phase() Phase
	SetPhase(Phase)

	// Client access
	Client() *transport.Client

	// UI components
	Input() *textinput.Model
	Width() int
	Height() int

	// Table state
	Table() *Table

	// Error display
	SetError(msg string)
	Error() string
}
