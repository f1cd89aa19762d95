package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/0x4d5352/regexcore/internal/redos"
)

// colorProfile is resolved once at startup: termenv inspects $TERM/$COLORTERM
// to decide how many colors the terminal actually supports, and go-isatty
// confirms stdout isn't redirected to a file or pipe before any ANSI escape
// is emitted — the same guard the teacher's own diagram output would need
// had it shipped a terminal preview instead of writing SVG files.
var colorProfile = termenv.ColorProfile()

func colorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && colorProfile != termenv.Ascii
}

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleBad  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleBold = lipgloss.NewStyle().Bold(true)

	severityStyles = map[redos.Severity]lipgloss.Style{
		redos.SeveritySafe:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		redos.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		redos.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		redos.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		redos.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		redos.SeverityUnknown:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
)

func render(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

func renderSeverity(sev redos.Severity) string {
	style, ok := severityStyles[sev]
	if !ok {
		style = styleDim
	}
	return render(style, sev.String())
}
