package cli

import (
	"fmt"

	"github.com/alexanderramin/renovo/internal/cli/formatter"
	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/spf13/cobra"
)

func newFeedbackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record quote outcomes and inspect learned adjustments",
	}

	cmd.AddCommand(
		newFeedbackRecordCmd(app),
		newFeedbackShowCmd(app),
	)

	return cmd
}

func newFeedbackRecordCmd(app *App) *cobra.Command {
	var accept, reject bool

	cmd := &cobra.Command{
		Use:   "record <quote-id>",
		Short: "Record whether a quote was accepted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Feedback.RecordOutcome(cmd.Context(), contract.FeedbackRequest{
				QuoteID:  args[0],
				Accepted: accept,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOutcome(rec))
			return nil
		},
	}

	cmd.Flags().BoolVar(&accept, "accept", false, "The customer accepted the quote")
	cmd.Flags().BoolVar(&reject, "reject", false, "The customer rejected the quote")
	cmd.MarkFlagsMutuallyExclusive("accept", "reject")
	cmd.MarkFlagsOneRequired("accept", "reject")

	return cmd
}

func newFeedbackShowCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the margin nudge and productivity multipliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary := app.Feedback.Summary(cmd.Context())
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeedbackSummary(summary))
			return nil
		},
	}

	formatFlag(cmd, &format, formatTable)

	return cmd
}
