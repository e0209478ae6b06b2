// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"
)

// Icon constants
const (
	DealerIcon  = "🎩"
	PlayerIcon  = "🧑"
	CursorIcon  = "▶"
	HiddenCard  = "??"
	ChipsSymbol = "$"
)

// Lipgloss Styles
var (
	DocStyle     = lipgloss.NewStyle().Margin(1, 2)
	RedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	GrayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	TitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle  = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	WinStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	LoseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	PushStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	LogStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	ActiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	HeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	SubtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)
