// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/blackjack/internal/protocol"
	"github.com/palemoky/blackjack/internal/ui/common"
	"github.com/palemoky/blackjack/internal/ui/input"
	"github.com/palemoky/blackjack/internal/ui/model"
)

// maxNameWidth 玩家名显示宽度
const maxNameWidth = 16

// Render renders the whole screen for the current phase.
func Render(m model.Model) string {
	switch m.Phase() {
	case model.PhaseConnecting:
		return common.DocStyle.Render("Connecting to server...")
	case model.PhaseDisconnected:
		return common.DocStyle.Render(common.ErrorStyle.Render("Disconnected: "+m.Error()) + "\n\nPress ctrl+c to quit.")
	default:
		return TableView(m)
	}
}

// TableView renders the table, the log and the prompt.
func TableView(m model.Model) string {
	t := m.Table()

	var sb strings.Builder
	sb.WriteString(header(t, m.Phase()))
	sb.WriteString("\n\n")
	sb.WriteString(dealerSection(t))
	sb.WriteString("\n")
	if seats := seatsSection(t); seats != "" {
		sb.WriteString(seats)
		sb.WriteString("\n")
	}
	if t.Seated {
		sb.WriteString(playerSection(t, m.Phase()))
		sb.WriteString("\n")
	}
	if results := resultsSection(t.Results); results != "" {
		sb.WriteString(results)
		sb.WriteString("\n")
	}
	sb.WriteString(logSection(t.Log))
	sb.WriteString(promptSection(m))

	width := m.Width()
	style := common.DocStyle
	if width > 4 {
		style = style.MaxWidth(width)
	}
	return style.Render(sb.String())
}

func header(t *model.Table, phase model.Phase) string {
	title := common.TitleStyle(fmt.Sprintf("♠ Blackjack · room %s", t.Room))
	info := common.SubtleStyle.Render(fmt.Sprintf("shoe: %d cards · %s", t.CardsRemaining, phase))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "   ", info)
}

func dealerSection(t *model.Table) string {
	label := common.HeaderStyle.Render(common.DealerIcon + " Dealer")
	if len(t.Dealer.Cards) == 0 {
		return label + "\n  " + common.SubtleStyle.Render("waiting for bets")
	}
	hand := common.RenderHand(t.Dealer)
	if len(t.Dealer.Cards) == 1 {
		hand = common.RenderCard(t.Dealer.Cards[0]) + " " + common.GrayStyle.Render(" "+common.HiddenCard+" ")
	}
	return label + "\n  " + hand
}

func seatsSection(t *model.Table) string {
	if len(t.Seats) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, s := range t.Seats {
		sb.WriteString(common.PlayerIcon + " " + common.TruncateName(s.Name, maxNameWidth))
		sb.WriteString("\n")
		for i, cards := range s.Cards {
			sb.WriteString(fmt.Sprintf("  [%d] %s\n", i, common.RenderCards(cards)))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func playerSection(t *model.Table, phase model.Phase) string {
	var sb strings.Builder
	sb.WriteString(common.HeaderStyle.Render(fmt.Sprintf("%s %s", common.PlayerIcon, common.TruncateName(t.Name, maxNameWidth))))
	sb.WriteString(fmt.Sprintf("  chips %s%d", common.ChipsSymbol, t.Chips))
	sb.WriteString("\n")

	if len(t.Hands) == 0 || len(t.Hands[0].Cards) == 0 {
		sb.WriteString("  " + common.SubtleStyle.Render("no hand this round"))
		return common.BoxStyle.Render(sb.String())
	}

	for i, h := range t.Hands {
		marker := " "
		line := fmt.Sprintf("[%d] %s", i, common.RenderHand(h))
		if phase == model.PhasePlaying && i == t.HandIndex {
			marker = common.CursorIcon
			line = common.ActiveStyle.Render(fmt.Sprintf("[%d]", i)) + " " + common.RenderHand(h)
		}
		if h.Finished && !h.Busted && !h.Blackjack {
			line += common.SubtleStyle.Render(" ✓")
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, line))
	}
	if phase == model.PhaseWaiting && t.Total > 0 {
		sb.WriteString(common.SubtleStyle.Render(fmt.Sprintf("  waiting for players (%d/%d hands done)", t.Finished, t.Total)))
	}
	return common.BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func resultsSection(results []protocol.WinnerPayload) string {
	if len(results) == 0 {
		return ""
	}
	lines := make([]string, len(results))
	for i, r := range results {
		render := common.OutcomeStyle(r.Outcome)
		lines[i] = fmt.Sprintf("  [%d] %s  payout %s%d", r.HandIndex, render(r.Outcome), common.ChipsSymbol, r.Payout)
	}
	return common.HeaderStyle.Render("Results") + "\n" + strings.Join(lines, "\n")
}

func logSection(log []string) string {
	if len(log) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, line := range log {
		sb.WriteString(common.LogStyle.Render("· " + line))
		sb.WriteString("\n")
	}
	return sb.String()
}

func promptSection(m model.Model) string {
	var sb strings.Builder
	if errMsg := m.Error(); errMsg != "" {
		sb.WriteString(common.ErrorStyle.Render("✗ " + errMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(common.PromptStyle.Render(m.Input().View()))
	sb.WriteString("\n")
	if hint := input.Hint(m.Phase(), m.Table()); hint != "" {
		sb.WriteString(common.HelpStyle.Render(hint + " · ctrl+c to quit"))
	}
	return sb.String()
}
