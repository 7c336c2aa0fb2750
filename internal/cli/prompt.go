package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/renovo/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// renovoHuhTheme returns a huh theme matching the formatter palette.
func renovoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// transcriptForm builds the multi-line transcript prompt.
func transcriptForm(result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Transcript").
				Description("Paste or type what the customer asked for.").
				Placeholder("Salle de bain 4 m2 à Paris, refaire le carrelage du sol...").
				CharLimit(8000).
				Lines(8).
				Value(result).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("transcript is required")
					}
					return nil
				}),
		),
	).WithTheme(renovoHuhTheme())
}

func promptTranscriptForm(cmd *cobra.Command) (string, error) {
	var transcript string
	if err := transcriptForm(&transcript).RunWithContext(cmd.Context()); err != nil {
		return "", err
	}
	return transcript, nil
}
