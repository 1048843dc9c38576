package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/runner/agenda"
)

func addAgenda(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show appointments grouped by day",
		Example: `
clinic agenda
clinic agenda --date week
`,
		Args: cobra.NoArgs,
		RunE: runE(oo, false, func(ctx context.Context, e *env) error {
			if err := fo.Apply(e.store); err != nil {
				return err
			}
			a := agenda.Agenda{
				Service: e.svc,
				Store:   e.store,
				Printer: e.printer(io.ShowID),
				JSON:    oo.JSON,
			}
			return a.Do(ctx)
		}),
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
