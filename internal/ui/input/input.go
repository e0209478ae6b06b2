// Package input parses table commands typed by the player.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/ui/handler"
	"github.com/palemoky/blackjack/internal/ui/model"
)

// ErrEmptyCommand 空输入
var ErrEmptyCommand = errors.New("empty command")

// Command 一条待发送的请求
type Command struct {
	Type    protocol.MessageType
	Payload any
}

// aliases 命令别名
var aliases = map[string]protocol.MessageType{
	"join":   protocol.MsgJoin,
	"sit":    protocol.MsgJoin,
	"deal":   protocol.MsgDeal,
	"bet":    protocol.MsgDeal,
	"hit":    protocol.MsgHit,
	"h":      protocol.MsgHit,
	"stand":  protocol.MsgStand,
	"s":      protocol.MsgStand,
	"split":  protocol.MsgSplit,
	"p":      protocol.MsgSplit,
	"double": protocol.MsgDouble,
	"d":      protocol.MsgDouble,
}

// Parse 解析一行输入。
//
//	join NAME [CHIPS]
//	deal BET
//	hit|stand|split|double [HAND]
//
// 省略 HAND 时使用 currentHand。
func Parse(line string, currentHand int) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	msgType, ok := aliases[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
	args := fields[1:]

	switch msgType {
	case protocol.MsgJoin:
		return parseJoin(args)
	case protocol.MsgDeal:
		return parseDeal(args)
	default:
		return parseHandAction(msgType, args, currentHand)
	}
}

func parseJoin(args []string) (Command, error) {
	if len(args) == 0 || len(args) > 2 {
		return Command{}, errors.New("usage: join NAME [CHIPS]")
	}
	payload := protocol.JoinPayload{Name: args[0]}
	if len(args) == 2 {
		chips, err := parseAmount(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("invalid chips: %w", err)
		}
		payload.Chips = &chips
	}
	return Command{Type: protocol.MsgJoin, Payload: payload}, nil
}

func parseDeal(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, errors.New("usage: deal BET")
	}
	bet, err := parseAmount(args[0])
	if err != nil {
		return Command{}, fmt.Errorf("invalid bet: %w", err)
	}
	return Command{Type: protocol.MsgDeal, Payload: protocol.DealPayload{Bet: &bet}}, nil
}

func parseHandAction(msgType protocol.MessageType, args []string, currentHand int) (Command, error) {
	if len(args) > 1 {
		return Command{}, fmt.Errorf("usage: %s [HAND]", msgType)
	}
	hand := currentHand
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return Command{}, fmt.Errorf("invalid hand index %q", args[0])
		}
		hand = n
	}
	if hand < 0 {
		hand = 0
	}
	return Command{Type: msgType, Payload: protocol.HandActionPayload{Hand: hand}}, nil
}

func parseAmount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "$"))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

// HandleEnter 解析输入框内容并发送给服务器
func HandleEnter(m model.Model) tea.Cmd {
	line := m.Input().Value()
	m.Input().Reset()

	cmd, err := Parse(line, m.Table().HandIndex)
	if errors.Is(err, ErrEmptyCommand) {
		return nil
	}
	if err != nil {
		m.SetError(err.Error())
		return handler.ClearErrorAfter()
	}

	if err := m.Client().Send(cmd.Type, cmd.Payload); err != nil {
		m.SetError(err.Error())
		return handler.ClearErrorAfter()
	}
	return nil
}

// Hint 当前阶段的操作提示
func Hint(phase model.Phase, t *model.Table) string {
	switch phase {
	case model.PhaseSpectating:
		return "join NAME [CHIPS]"
	case model.PhaseBetting:
		return "deal BET"
	case model.PhasePlaying:
		if t.Splitable {
			return "hit | stand | double | split [HAND]"
		}
		return "hit | stand | double [HAND]"
	case model.PhaseWaiting:
		return "waiting for other players"
	default:
		return ""
	}
}
