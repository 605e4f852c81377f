package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DividerWidth is the default width for divider lines. Phone screens in
// portrait are narrow, so it stays well under 80 columns.
const DividerWidth = 40

// PhaseDisplay renders workflow step status to an output writer.
type PhaseDisplay struct {
	w io.Writer
}

// NewPhaseDisplay creates a new phase display writing to w.
func NewPhaseDisplay(w io.Writer) *PhaseDisplay {
	return &PhaseDisplay{w: w}
}

// Writer returns the underlying writer.
func (pd *PhaseDisplay) Writer() io.Writer {
	return pd.w
}

// Spinner creates a spinner that writes to the same output.
func (pd *PhaseDisplay) Spinner(label string) *Spinner {
	return NewSpinner(pd.w, label)
}

// RenderStart announces a step that hands the terminal to an interactive
// command. Shows: ◐ Updating packages
func (pd *PhaseDisplay) RenderStart(name string) {
	style := lipgloss.NewStyle().Foreground(ColorSecondary)
	fmt.Fprintf(pd.w, "%s %s\n", style.Render(SymbolProgress), name)
}

// RenderSuccess renders a completed step.
// Shows: ● Packages installed 12.3s
func (pd *PhaseDisplay) RenderSuccess(name string, duration time.Duration) {
	fmt.Fprintln(pd.w, FormatPhase(SymbolComplete, ColorSuccess, name, formatDuration(duration)))
}

// RenderFailed renders a failed step.
// Shows: ✗ Package install failed 2.3s
func (pd *PhaseDisplay) RenderFailed(name string, duration time.Duration) {
	fmt.Fprintln(pd.w, FormatPhase(SymbolFail, ColorError, name, formatDuration(duration)))
}

// RenderSkipped renders a skipped step.
// Shows: ⊘ SSH key (kept existing key)
func (pd *PhaseDisplay) RenderSkipped(name string, reason string) {
	if reason == "" {
		fmt.Fprintln(pd.w, FormatPhase(SymbolSkipped, ColorWarning, name, ""))
		return
	}
	fmt.Fprintln(pd.w, FormatPhase(SymbolSkipped, ColorWarning, name, "("+reason+")"))
}

// RenderSubStatus renders an indented detail line under a step.
// Shows:   ○ fingerprint  SHA256:abc...
func (pd *PhaseDisplay) RenderSubStatus(symbol string, name string, status string) {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "  %s %s %s\n",
		style.Render(symbol),
		name,
		style.Render(status),
	)
}

// Divider renders a heavy horizontal rule.
func (pd *PhaseDisplay) Divider() {
	fmt.Fprintf(pd.w, "\n%s\n\n", FormatDivider(DividerWidth))
}

// ThinDivider renders a thin horizontal rule.
func (pd *PhaseDisplay) ThinDivider() {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "\n%s\n\n", style.Render(strings.Repeat("─", DividerWidth)))
}

// CommandPrompt renders a command the user may want to run themselves.
// Shows: $ gpg --list-secret-keys
func (pd *PhaseDisplay) CommandPrompt(cmd string) {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "%s %s\n", style.Render("$"), cmd)
}

// Newline writes an empty line.
func (pd *PhaseDisplay) Newline() {
	fmt.Fprintln(pd.w)
}

// FormatPhase returns a formatted phase line as a string.
func FormatPhase(symbol string, symbolColor lipgloss.Color, name string, timing string) string {
	symbolStyle := lipgloss.NewStyle().Foreground(symbolColor)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if timing == "" {
		return fmt.Sprintf("%s %s", symbolStyle.Render(symbol), name)
	}
	return fmt.Sprintf("%s %s %s", symbolStyle.Render(symbol), name, timingStyle.Render(timing))
}

// FormatDivider returns a divider line as a string.
func FormatDivider(width int) string {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	return style.Render(strings.Repeat("━", width))
}
