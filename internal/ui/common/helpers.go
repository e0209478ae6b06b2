package common

import (
	"fmt"
	"strings"

	"github.com/palemoky/blackjack/internal/game/card"
	"github.com/palemoky/blackjack/internal/protocol"
)

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// RenderCard renders a wire card string ("A of Spades") as a short colored face.
// Unparseable strings are rendered as-is.
func RenderCard(s string) string {
	c, err := card.ParseCard(s)
	if err != nil {
		return GrayStyle.Render(" " + s + " ")
	}
	face := " " + c.Short() + " "
	if c.Suit.IsRed() {
		return RedStyle.Render(face)
	}
	return BlackStyle.Render(face)
}

// RenderCards renders a row of cards separated by a space.
func RenderCards(cards []string) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = RenderCard(c)
	}
	return strings.Join(parts, " ")
}

// RenderHand renders a hand with its value and status flags.
func RenderHand(h protocol.HandInfo) string {
	if len(h.Cards) == 0 {
		return SubtleStyle.Render("(no cards)")
	}

	var sb strings.Builder
	sb.WriteString(RenderCards(h.Cards))
	sb.WriteString(fmt.Sprintf("  (%d)", h.Value))
	switch {
	case h.Blackjack:
		sb.WriteString(" " + WinStyle.Render("BLACKJACK"))
	case h.Busted:
		sb.WriteString(" " + LoseStyle.Render("BUST"))
	case h.Soft:
		sb.WriteString(" " + SubtleStyle.Render("soft"))
	}
	if h.Stake > 0 {
		sb.WriteString(fmt.Sprintf("  bet %s%d", ChipsSymbol, h.Stake))
	}
	return sb.String()
}

// OutcomeStyle picks a style for a settlement outcome.
func OutcomeStyle(outcome string) func(...string) string {
	switch outcome {
	case "win", "blackjack", "dealer_bust":
		return WinStyle.Render
	case "push", "blackjack_push":
		return PushStyle.Render
	default:
		return LoseStyle.Render
	}
}
