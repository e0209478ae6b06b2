// Package handler processes server messages.
package handler

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/protocol/codec"
	"github.com/palemoky/blackjack/internal/ui/model"
)

// errorDisplayDuration 错误提示显示时长
const errorDisplayDuration = 3 * time.Second

// messageHandler 消息处理函数类型
type messageHandler func(m model.Model, msg *protocol.Message) tea.Cmd

// messageHandlers 消息处理器映射表
var messageHandlers = map[protocol.MessageType]messageHandler{
	// Connection
	protocol.MsgConnectionGood: handleMsgConnectionGood,
	protocol.MsgError:          handleMsgError,

	// Seating
	protocol.MsgJoin:       handleMsgJoined,
	protocol.MsgPlayerJoin: handleMsgPlayerJoin,

	// Round
	protocol.MsgGameState:      handleMsgGameState,
	protocol.MsgCards:          handleMsgCards,
	protocol.MsgSplitable:      handleMsgSplitable,
	protocol.MsgHandIndex:      handleMsgHandIndex,
	protocol.MsgWaitForPlayers: handleMsgWaitForPlayers,
	protocol.MsgWinner:         handleMsgWinner,
	protocol.MsgEndGame:        handleMsgEndGame,
	protocol.MsgReset:          handleMsgReset,
}

// HandleServerMessage dispatches server messages to appropriate handlers.
func HandleServerMessage(m model.Model, msg *protocol.Message) tea.Cmd {
	if handler, ok := messageHandlers[msg.Type]; ok {
		return handler(m, msg)
	}
	return nil
}

// ClearErrorAfter schedules a ClearErrorMsg.
func ClearErrorAfter() tea.Cmd {
	return tea.Tick(errorDisplayDuration, func(time.Time) tea.Msg {
		return model.ClearErrorMsg{}
	})
}

func handleMsgConnectionGood(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ConnectionGoodPayload](msg)
	if err != nil {
		return nil
	}
	t := m.Table()
	t.Room = payload.Room
	t.ConnID = payload.ChannelName
	t.CardsRemaining = payload.CardsRemaining
	t.AddLog(payload.Message)
	m.SetPhase(model.PhaseSpectating)
	return nil
}

func handleMsgError(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return nil
	}
	m.SetError(payload.Message)
	return ClearErrorAfter()
}

func handleMsgJoined(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.JoinedPayload](msg)
	if err != nil {
		return nil
	}
	t := m.Table()
	t.Name = payload.Name
	t.Chips = payload.Chips
	t.Seated = true
	m.SetPhase(model.PhaseBetting)
	return nil
}

func handleMsgPlayerJoin(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PlayerJoinPayload](msg)
	if err != nil {
		return nil
	}
	m.Table().AddLog(fmt.Sprintf("%s joined the table", payload.PlayerName))
	return nil
}

func handleMsgGameState(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GameStatePayload](msg)
	if err != nil {
		return nil
	}
	m.Table().ApplyGameState(payload)
	if _, ok := m.Table().CurrentHand(); ok {
		m.SetPhase(model.PhasePlaying)
	}
	return nil
}

func handleMsgCards(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.CardsPayload](msg)
	if err != nil {
		return nil
	}
	m.Table().ApplyCards(payload)
	return nil
}

func handleMsgSplitable(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.SplitablePayload](msg)
	if err != nil {
		return nil
	}
	t := m.Table()
	if payload.HandIndex == t.HandIndex {
		t.Splitable = true
	}
	return nil
}

func handleMsgHandIndex(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.HandIndexPayload](msg)
	if err != nil {
		return nil
	}
	m.Table().HandIndex = payload.HandIndex
	m.SetPhase(model.PhasePlaying)
	return nil
}

func handleMsgWaitForPlayers(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.WaitForPlayersPayload](msg)
	if err != nil {
		return nil
	}
	t := m.Table()
	t.Finished = payload.Finished
	t.Total = payload.Total
	m.SetPhase(model.PhaseWaiting)
	return nil
}

func handleMsgWinner(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.WinnerPayload](msg)
	if err != nil {
		return nil
	}
	t := m.Table()
	t.Results = append(t.Results, *payload)
	t.AddLog(payload.Message)
	return nil
}

func handleMsgEndGame(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.EndGamePayload](msg)
	if err != nil {
		return nil
	}
	m.Table().ApplyEndGame(payload)
	return nil
}

func handleMsgReset(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ResetPayload](msg)
	if err != nil {
		return nil
	}
	t := m.Table()
	t.ApplyReset(payload)
	if t.Seated {
		m.SetPhase(model.PhaseBetting)
	}
	return nil
}
