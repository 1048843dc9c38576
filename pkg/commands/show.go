package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var id string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one appointment",
		Example: `
clinic show 8x2kq0f3m1c7a9d
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}
			id = args[0]
			return nil
		},
		ValidArgsFunction: completeIDs,
		RunE: runE(oo, false, func(ctx context.Context, e *env) error {
			s := show.Show{
				Service: e.svc,
				Store:   e.store,
				Printer: e.printer(true),
				ID:      id,
				JSON:    oo.JSON,
			}
			return s.Do(ctx)
		}),
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
