package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/targetrun/targetrun/internal/execute"
	"github.com/targetrun/targetrun/internal/stats"
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("targetrun batch"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("elapsed %s", formatElapsed(m.Elapsed()))))
	b.WriteString("\n\n")

	pending, running, done := m.counts()
	b.WriteString(headerStyle.Render(
		fmt.Sprintf("%d done  %d running  %d pending", done, running, pending)))
	b.WriteString("\n\n")

	for _, row := range m.rows {
		b.WriteString(renderRow(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("q to stop watching (running jobs finish on their own)"))
	b.WriteString("\n")

	return b.String()
}

func renderRow(row jobRow) string {
	switch row.state {
	case stateRunning:
		return fmt.Sprintf("  %s %s %s",
			warnStyle.Render("▶"),
			baseStyle.Render(row.name),
			mutedStyle.Render(formatElapsed(time.Since(row.started))))

	case stateDone:
		if row.err != nil {
			label := fmt.Sprintf("exit %d", row.status)
			if errors.Is(row.err, execute.ErrCommandNotFound) {
				label = "not found"
			}
			return fmt.Sprintf("  %s %s %s",
				failStyle.Render("✗"),
				baseStyle.Render(row.name),
				failStyle.Render(fmt.Sprintf("(%s, %s)", label, stats.FormatDuration(row.duration))))
		}
		if row.status != 0 {
			// AllowFailure: reported, not raised.
			return fmt.Sprintf("  %s %s %s",
				warnStyle.Render("✓"),
				baseStyle.Render(row.name),
				warnStyle.Render(fmt.Sprintf("(exit %d, %s)", row.status, stats.FormatDuration(row.duration))))
		}
		return fmt.Sprintf("  %s %s %s",
			okStyle.Render("✓"),
			baseStyle.Render(row.name),
			mutedStyle.Render(fmt.Sprintf("(%s)", stats.FormatDuration(row.duration))))

	default:
		return fmt.Sprintf("  %s %s",
			mutedStyle.Render("·"),
			mutedStyle.Render(row.name))
	}
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m >= 60 {
		return fmt.Sprintf("%dh%02dm%02ds", m/60, m%60, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
