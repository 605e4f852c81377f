package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication. ANSI palette indexes, so the
// terminal's color theme decides the exact shade.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
	ColorAccent    lipgloss.Color = "5" // Magenta
)

// GradientColors are cycled by the spinner animation.
var GradientColors = []lipgloss.Color{
	ColorAccent,
	ColorSecondary,
	ColorInfo,
	ColorSuccess,
}
