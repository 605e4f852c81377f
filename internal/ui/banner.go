package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BannerInfo is shown once at session start.
type BannerInfo struct {
	Version string // e.g. "v0.3.0"
	Tagline string // optional
}

// RenderBanner renders the session header.
func RenderBanner(info BannerInfo) string {
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	versionStyle := lipgloss.NewStyle().Foreground(ColorInfo)
	taglineStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var b strings.Builder
	b.WriteString(titleStyle.Render("devboot"))
	if info.Version != "" {
		b.WriteString(" ")
		b.WriteString(versionStyle.Render(info.Version))
	}
	b.WriteString("\n")

	if info.Tagline != "" {
		b.WriteString(taglineStyle.Render(info.Tagline))
		b.WriteString("\n")
	}

	b.WriteString(FormatDivider(DividerWidth))
	b.WriteString("\n")
	return b.String()
}

// PrintBanner writes the banner to w.
func PrintBanner(w io.Writer, info BannerInfo) {
	fmt.Fprint(w, RenderBanner(info))
}

// MenuItem is one numbered menu line.
type MenuItem struct {
	Key   string
	Label string
}

// RenderMenu renders a numbered menu under a title.
//
//	Select an operation
//	  1  Backup SSH key
//	  2  Backup GPG key
func RenderMenu(title string, items []MenuItem) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ColorInfo)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(item.Key), item.Label)
	}
	return b.String()
}
