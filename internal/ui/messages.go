package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Success prints a green check line.
func Success(w io.Writer, format string, args ...any) {
	printSymbol(w, SymbolSuccess, ColorSuccess, format, args...)
}

// Warn prints a yellow skipped/advisory line.
func Warn(w io.Writer, format string, args ...any) {
	printSymbol(w, SymbolSkipped, ColorWarning, format, args...)
}

// Fail prints a red cross line.
func Fail(w io.Writer, format string, args ...any) {
	printSymbol(w, SymbolFail, ColorError, format, args...)
}

// Info prints a muted informational line.
func Info(w io.Writer, format string, args ...any) {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintln(w, style.Render(fmt.Sprintf(format, args...)))
}

func printSymbol(w io.Writer, symbol string, color lipgloss.Color, format string, args ...any) {
	style := lipgloss.NewStyle().Foreground(color)
	fmt.Fprintf(w, "%s %s\n", style.Render(symbol), fmt.Sprintf(format, args...))
}

// Block prints a titled block of verbatim text, such as a public key the
// user needs to copy into a web form.
func Block(w io.Writer, title, body string) {
	titleStyle := lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, strings.TrimRight(body, "\n"))
	fmt.Fprintln(w)
}

// ErrorBlock prints a rendered error. Advisory errors are already prefixed
// with ⊘ and get the warning color; everything else gets the error color.
func ErrorBlock(w io.Writer, rendered string, advisory bool) {
	color := ColorError
	if advisory {
		color = ColorWarning
	}
	lines := strings.SplitN(strings.TrimRight(rendered, "\n"), "\n", 2)
	style := lipgloss.NewStyle().Foreground(color)
	fmt.Fprintln(w, style.Render(lines[0]))
	if len(lines) > 1 {
		fmt.Fprintln(w, lines[1])
	}
}
