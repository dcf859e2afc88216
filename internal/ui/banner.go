package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// RenderBanner frames a title and optional subtitle lines in a double border
// drawn in the accent colour of the active theme.
func RenderBanner(title string, lines ...string) string {
	theme := GetCurrentTheme()

	var accent lipgloss.TerminalColor = lipgloss.NoColor{}
	if theme.Accent != "" {
		accent = lipgloss.Color(theme.Accent)
	}

	titleStyle := lipgloss.NewStyle().Bold(theme.Bold != "").Foreground(accent)
	body := []string{titleStyle.Render(title)}
	body = append(body, lines...)

	frame := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(accent).
		Padding(0, 2)
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

// IsTerminal reports whether f is attached to a terminal. Colour output is
// only enabled for terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
