package cli

import (
	"fmt"

	"github.com/alexanderramin/renovo/internal/cli/formatter"
	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/spf13/cobra"
)

func newProductivityCmd(app *App) *cobra.Command {
	var (
		req  contract.ProductivityRequest
		task string
	)

	cmd := &cobra.Command{
		Use:   "productivity",
		Short: "Record the hours a finished task actually took",
		Example: `  renovo productivity --city Paris --task tiling_floor --realized 12 --estimated 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Task = domain.TaskID(task)
			m, err := app.Feedback.RecordRealizedHours(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMultiplier(m))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.City, "city", "", "City where the task was done")
	cmd.Flags().StringVar(&task, "task", "", "Task id, e.g. tiling_floor")
	cmd.Flags().Float64Var(&req.RealizedHours, "realized", 0, "Hours the task actually took")
	cmd.Flags().Float64Var(&req.EstimatedHours, "estimated", 0, "Hours the quote estimated")
	for _, name := range []string{"city", "task", "realized", "estimated"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
