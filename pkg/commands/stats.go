package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/runner/stats"
	"tableflip.dev/clinic/pkg/runner/statuses"
)

func addStats(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count appointments by status",
		Example: `
clinic stats
clinic stats --date month
`,
		Args: cobra.NoArgs,
		RunE: runE(oo, false, func(ctx context.Context, e *env) error {
			if err := fo.Apply(e.store); err != nil {
				return err
			}
			s := stats.Stats{
				Service: e.svc,
				Store:   e.store,
				Printer: e.printer(false),
				JSON:    oo.JSON,
			}
			return s.Do(ctx)
		}),
	}

	options.AddFilterArgs(cmd, fo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addStatuses(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "statuses",
		Short: "Print the appointment statuses and their colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := statuses.Statuses{
				Printer: &printers.PrettyPrint{},
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
