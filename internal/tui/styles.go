// Package tui provides a live terminal view of a batch run.
//
// The TUI uses Bubble Tea for the application framework and Lipgloss for
// styling. It shows each job's state (pending, running, done), exit codes,
// and the running batch clock.
package tui

import "github.com/charmbracelet/lipgloss"

// Colors based on a modern dark theme.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan

	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red

	colorText      = lipgloss.Color("#E5E7EB") // Light gray
	colorTextMuted = lipgloss.Color("#9CA3AF") // Medium gray
	colorBorder    = lipgloss.Color("#374151") // Border gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	baseStyle = lipgloss.NewStyle().
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	okStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	failStyle = lipgloss.NewStyle().
			Foreground(colorError)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorBorder)
)
