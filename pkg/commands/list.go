package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List appointments, earliest first",
		Example: `
clinic list
clinic list --date today --status confirmed
clinic list -q hopper --from 2024-03-01 --to 2024-03-31
`,
		Args: cobra.NoArgs,
		RunE: runE(oo, false, func(ctx context.Context, e *env) error {
			if err := fo.Apply(e.store); err != nil {
				return err
			}
			l := list.List{
				Service: e.svc,
				Store:   e.store,
				Printer: e.printer(io.ShowID),
				JSON:    oo.JSON,
			}
			return l.Do(ctx)
		}),
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
