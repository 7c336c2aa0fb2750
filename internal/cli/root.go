package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/renovo/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services and terminal hooks used by CLI commands.
type App struct {
	Quotes   service.QuoteService
	Feedback service.FeedbackService
	Logger   *slog.Logger

	// HTTPAddr is the default listen address of `renovo serve`.
	HTTPAddr string

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// PromptTranscript asks for a transcript interactively. Nil falls back
	// to the huh form.
	PromptTranscript func(cmd *cobra.Command) (string, error)

	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// NewRootCmd creates the top-level "renovo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "renovo",
		Short:         "Price renovation transcripts into itemized quotes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newQuoteCmd(app),
		newShowCmd(app),
		newHistoryCmd(app),
		newFeedbackCmd(app),
		newProductivityCmd(app),
		newGraphCmd(app),
		newServeCmd(app),
	)

	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
