package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ScoreStyle colors a [0,1] score: green from 0.8, yellow from 0.5, red below.
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.8:
		return StyleGreen
	case score >= 0.5:
		return StyleYellow
	default:
		return StyleRed
	}
}

// ScoreIndicator renders a score with its flags, e.g. "● 0.75 city_unrecognized".
func ScoreIndicator(score float64, flags []string) string {
	s := ScoreStyle(score).Render(fmt.Sprintf("● %.2f", score))
	if len(flags) == 0 {
		return s
	}
	return s + " " + Dim(strings.Join(flags, ", "))
}

// ChangeIndicator renders a percent change, red for increases.
func ChangeIndicator(pct *float64) string {
	if pct == nil {
		return Dim("--")
	}
	switch {
	case *pct > 0:
		return StyleRed.Render(fmt.Sprintf("▲ %+.2f%%", *pct))
	case *pct < 0:
		return StyleGreen.Render(fmt.Sprintf("▼ %+.2f%%", *pct))
	default:
		return Dim("= 0.00%")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
