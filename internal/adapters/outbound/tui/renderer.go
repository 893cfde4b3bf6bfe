package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cifix/cifix/internal/domain"
)

// ── palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 48))
)

// Summary is the one-line outcome of a run.
func Summary(report *domain.RemediationReport) string {
	switch {
	case !report.Changed:
		return "No known fixes applied."
	case report.DryRun:
		return "Fixes available (dry run, nothing written)."
	case report.Committed:
		return "Applied fixes and committed."
	default:
		return "Applied fixes (not committed)."
	}
}

func RenderReport(report *domain.RemediationReport) string {
	var b strings.Builder

	b.WriteString("  " + headerStyle.Render("cifix"))
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%d log files", report.LogFiles)))
	if report.SkippedLogs > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf(", %d unreadable", report.SkippedLogs)))
	}
	b.WriteString("\n  " + separatorLine + "\n")

	for _, o := range report.Rules {
		renderOutcome(&b, o)
	}

	b.WriteString("  " + separatorLine + "\n")

	summary := Summary(report)
	if report.Changed {
		b.WriteString("  " + passStyle.Render(summary))
		if report.CommitHash != "" {
			b.WriteString(" " + dimStyle.Render(shortHash(report.CommitHash)))
		}
	} else {
		b.WriteString("  " + titleStyle.Render(summary))
	}
	b.WriteString("\n")

	return b.String()
}

func renderOutcome(b *strings.Builder, o domain.RuleOutcome) {
	var icon, status string
	switch {
	case o.Changed:
		icon, status = passStyle.Render("●"), passStyle.Render("fixed")
	case o.Triggered:
		icon, status = warnStyle.Render("●"), warnStyle.Render("detected, no change")
	default:
		icon, status = faintStyle.Render("○"), dimStyle.Render("not detected")
	}
	fmt.Fprintf(b, "  %s %s %s  %s\n", icon, titleStyle.Render(padRight(o.ID, 20)), status, fileStyle.Render(o.Path))
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
