package cli

import (
	"fmt"

	"github.com/alexanderramin/renovo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGraphCmd(app *App) *cobra.Command {
	var (
		transcript string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the task graph and how a transcript resolves against it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Quotes.InspectGraph(cmd.Context(), transcript)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGraph(report))
			return nil
		},
	}

	cmd.Flags().StringVarP(&transcript, "transcript", "t", "", "Resolve this transcript against the graph")
	formatFlag(cmd, &format, formatTable)

	return cmd
}
