package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/dateutil"
	"tableflip.dev/clinic/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recent appointments and the ones still open",
		Long: `Report lists the appointments that started within the time window grouped by
day, counts them by status, and calls out past visits that never reached a
final status.

Examples:
  clinic report
  clinic report --last 3d
  clinic report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: runE(oo, false, func(ctx context.Context, e *env) error {
			r := report.Report{
				Service: e.svc,
				Printer: e.printer(false),
				Last:    last,
				Now:     e.store.Now,
				JSON:    oo.JSON,
			}
			return r.Do(ctx)
		}),
	}

	cmd.Flags().StringVar(&last, "last", dateutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
