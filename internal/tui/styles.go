package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// selected tab, neon on dark
var neon = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#ff00ff")).
	Background(lipgloss.Color("#1a001a"))

var sidebar = lipgloss.NewStyle().
	Width(sidebarWidth).
	PaddingLeft(1)

var button = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#444466")).
	Padding(0, 1)

func separator(width int) string {
	return dimmer.Render(strings.Repeat("─", max(width, 0)))
}
