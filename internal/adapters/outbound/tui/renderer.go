package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/suitelint/suitelint/internal/domain"
	"github.com/suitelint/suitelint/internal/domain/fixes"
)

// ── Warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(64)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	codeStyle     = lipgloss.NewStyle().Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderResult formats one file's validation outcome. In verbose mode each
// finding carries its source context and fix suggestion.
func RenderResult(r *domain.ValidationResult, lines []string, verbose bool) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s  %s\n",
		statusBadge(r.Status()),
		fileStyle.Render(r.FilePath),
		dimStyle.Render(fmt.Sprintf("(%d errors, %d warnings, %s)",
			r.ErrorCount(), r.WarningCount(), r.Duration.Round(time.Millisecond))),
	))

	for _, f := range r.Findings {
		b.WriteString(renderFinding(f, lines, verbose))
	}

	return b.String()
}

func renderFinding(f domain.Finding, lines []string, verbose bool) string {
	var b strings.Builder

	tag := errorTagStyle.Render(string(f.Severity))
	if f.Severity == domain.SeverityWarning {
		tag = warnTagStyle.Render(string(f.Severity))
	}

	b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
		codeStyle.Render(f.Code),
		tag,
		dimStyle.Render(f.Location()),
		f.Message,
	))

	if f.Context != "" {
		b.WriteString("      " + faintStyle.Render(f.Context) + "\n")
	}
	if f.Suggestion != "" {
		b.WriteString("      " + dimStyle.Render(f.Suggestion) + "\n")
	}

	if verbose {
		s := fixes.Generate(f, lines)
		b.WriteString(renderSuggestion(s))
	}

	return b.String()
}

func renderSuggestion(s fixes.Suggestion) string {
	var b strings.Builder
	b.WriteString("      " + warnStyle.Render(s.Title) + "\n")
	for i, step := range s.Steps {
		b.WriteString(fmt.Sprintf("        %d. %s\n", i+1, step))
	}
	if s.Code != "" {
		for _, line := range strings.Split(s.Code, "\n") {
			b.WriteString("        " + dimStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

// RenderBatchHeader draws the boxed banner shown before batch results.
func RenderBatchHeader(files int, metadataUsed bool) string {
	title := headerStyle.Render("suitelint")
	subtitle := dimStyle.Render("TestNG suite validation")
	mode := dimStyle.Render(fmt.Sprintf("%d file(s)  ·  structural", files))
	if metadataUsed {
		mode = dimStyle.Render(fmt.Sprintf("%d file(s)  ·  structural + semantic", files))
	}
	return boxStyle.Render(title+"\n"+subtitle+"\n\n"+mode) + "\n\n"
}

// RenderBatchFooter summarizes a batch run after the per-file output.
func RenderBatchFooter(results []*domain.ValidationResult) string {
	var passed, warned, failed, errs, warns int
	for _, r := range results {
		errs += r.ErrorCount()
		warns += r.WarningCount()
		switch r.Status() {
		case domain.StatusPass:
			passed++
		case domain.StatusWarn:
			warned++
		case domain.StatusFail:
			failed++
		}
	}

	var b strings.Builder
	b.WriteString(separatorLine + "\n")

	verdict := passStyle.Render("PASS")
	if failed > 0 {
		verdict = failStyle.Render("FAIL")
	} else if warned > 0 {
		verdict = warnStyle.Render("WARN")
	}

	b.WriteString(fmt.Sprintf("  %s  %s\n",
		verdict,
		dimStyle.Render(fmt.Sprintf("%d passed  ·  %d warned  ·  %d failed  ·  %d errors  ·  %d warnings",
			passed, warned, failed, errs, warns)),
	))

	return b.String()
}

func statusBadge(s domain.Status) string {
	switch s {
	case domain.StatusPass:
		return passStyle.Render("✓")
	case domain.StatusWarn:
		return warnStyle.Render("!")
	default:
		return failStyle.Render("✗")
	}
}
