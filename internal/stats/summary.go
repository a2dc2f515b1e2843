package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SummaryConfig holds configuration for summary formatting.
type SummaryConfig struct {
	// RunfilePath identifies the job list that was run.
	RunfilePath string

	// Concurrency is the worker count used for the run.
	Concurrency int

	// MetricsAddr is the Prometheus endpoint, empty when disabled.
	MetricsAddr string
}

// FormatSummary formats a batch snapshot for display at program exit.
func FormatSummary(snap Snapshot, cfg SummaryConfig) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("═══════════════════════════════════════════════════════════════════\n")
	b.WriteString("                        targetrun Batch Summary\n")
	b.WriteString("═══════════════════════════════════════════════════════════════════\n\n")

	if cfg.RunfilePath != "" {
		fmt.Fprintf(&b, "Runfile:                %s\n", cfg.RunfilePath)
	}
	fmt.Fprintf(&b, "Run Duration:           %s\n", FormatDuration(snap.Elapsed))
	fmt.Fprintf(&b, "Concurrency:            %d\n\n", cfg.Concurrency)

	b.WriteString("───────────────────────────────────────────────────────────────────\n")
	b.WriteString("                              Jobs\n")
	b.WriteString("───────────────────────────────────────────────────────────────────\n\n")

	fmt.Fprintf(&b, "  %-20s %8d\n", "Total", snap.Total)
	fmt.Fprintf(&b, "  %-20s %8d\n", "Succeeded", snap.Succeeded)
	fmt.Fprintf(&b, "  %-20s %8d\n", "Failed", snap.Failed)
	if snap.NotFound > 0 {
		fmt.Fprintf(&b, "  %-20s %8d\n", "Command not found", snap.NotFound)
	}
	b.WriteString("\n")

	if len(snap.ExitCodes) > 0 {
		codes := make([]int, 0, len(snap.ExitCodes))
		for code := range snap.ExitCodes {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		b.WriteString("  Exit codes:\n")
		for _, code := range codes {
			fmt.Fprintf(&b, "    %4d: %d\n", code, snap.ExitCodes[code])
		}
		b.WriteString("\n")
	}

	if snap.Succeeded+snap.Failed > 0 {
		b.WriteString("───────────────────────────────────────────────────────────────────\n")
		b.WriteString("                           Job Durations\n")
		b.WriteString("───────────────────────────────────────────────────────────────────\n\n")
		fmt.Fprintf(&b, "  P50:  %s\n", FormatDuration(snap.P50))
		fmt.Fprintf(&b, "  P95:  %s\n", FormatDuration(snap.P95))
		fmt.Fprintf(&b, "  P99:  %s\n", FormatDuration(snap.P99))
		fmt.Fprintf(&b, "  Max:  %s\n", FormatDuration(snap.Max))
		fmt.Fprintf(&b, "  Mean: %s\n\n", FormatDuration(snap.Mean))
	}

	if cfg.MetricsAddr != "" {
		fmt.Fprintf(&b, "Metrics were served at http://%s/metrics\n", cfg.MetricsAddr)
	}
	return b.String()
}

// FormatDuration renders a duration with sub-second precision for short
// values and without it for long ones.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	if d < time.Minute {
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
