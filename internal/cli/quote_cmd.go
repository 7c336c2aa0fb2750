package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/renovo/internal/cli/formatter"
	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/export"
	"github.com/spf13/cobra"
)

func newQuoteCmd(app *App) *cobra.Command {
	var (
		transcript string
		file       string
		csvPath    string
		format     string
	)
	req := contract.NewQuoteRequest("")

	cmd := &cobra.Command{
		Use:   "quote [transcript]",
		Short: "Price a transcript and print the quote",
		Long: `Price a renovation transcript into an itemized quote.

The transcript is read from --transcript, the positional argument, --file
(use - for stdin), an interactive prompt when stdin is a terminal, or
piped stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if transcript == "" && len(args) == 1 {
				transcript = args[0]
			}
			text, err := readTranscript(cmd, app, transcript, file)
			if err != nil {
				return err
			}
			req.Transcript = text

			resp, err := app.Quotes.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if csvPath != "" {
				if err := writeCSVFile(csvPath, resp.Quotes); err != nil {
					return err
				}
				app.logger().Info("quote csv written", "path", csvPath, "quotes", len(resp.Quotes))
			}

			return printQuotes(cmd.OutOrStdout(), format, req.AllScenarios(), resp.Quotes)
		},
	}

	cmd.Flags().StringVarP(&transcript, "transcript", "t", "", "Transcript text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the transcript from a file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("transcript", "file")
	enumFlag(cmd, &req.Scenario, "scenario", string(domain.ScenarioMid), "Pricing scenario",
		string(domain.ScenarioLow), string(domain.ScenarioMid), string(domain.ScenarioHigh), contract.ScenarioAll)
	enumFlag(cmd, &req.Seasonality, "seasonality", string(domain.SeasonNeutral), "Market seasonality",
		string(domain.SeasonNeutral), string(domain.SeasonPeak), string(domain.SeasonOff))
	cmd.Flags().Float64Var(&req.Inflation, "inflation", 0, "Material inflation as a fraction, e.g. 0.03")
	cmd.Flags().Float64Var(&req.Shortage, "shortage", 0, "Supply shortage in [0,1]")
	cmd.Flags().StringVar(&req.ZoneName, "zone", "", "Zone name shown on the quote")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the task breakdown as CSV to this path")
	formatFlag(cmd, &format, formatJSON)

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var (
		format  string
		csvPath string
	)

	cmd := &cobra.Command{
		Use:   "show <quote-id>",
		Short: "Print a stored quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := app.Quotes.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if csvPath != "" {
				if err := writeCSVFile(csvPath, []*domain.Quote{q}); err != nil {
					return err
				}
			}
			return printQuotes(cmd.OutOrStdout(), format, false, []*domain.Quote{q})
		},
	}

	formatFlag(cmd, &format, formatJSON)
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the task breakdown as CSV to this path")

	return cmd
}

// readTranscript resolves the transcript source in flag, file, prompt,
// stdin order.
func readTranscript(cmd *cobra.Command, app *App, flag, file string) (string, error) {
	if strings.TrimSpace(flag) != "" {
		return flag, nil
	}
	if file != "" && file != "-" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading transcript file: %w", err)
		}
		return string(data), nil
	}
	if file == "" && app.interactive() {
		prompt := app.PromptTranscript
		if prompt == nil {
			prompt = promptTranscriptForm
		}
		return prompt(cmd)
	}

	data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), contract.MaxTranscriptBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading transcript from stdin: %w", err)
	}
	return string(data), nil
}

func printQuotes(w io.Writer, format string, all bool, quotes []*domain.Quote) error {
	if format == formatTable {
		_, err := fmt.Fprint(w, formatter.FormatScenarios(quotes))
		return err
	}
	if all {
		return writeJSON(w, contract.QuoteResponse{Quotes: quotes})
	}
	return writeJSON(w, quotes[0])
}

func writeCSVFile(path string, quotes []*domain.Quote) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing csv file: %w", cerr)
		}
	}()
	return export.WriteTasksCSV(f, quotes...)
}
