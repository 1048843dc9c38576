package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/config"
	"tableflip.dev/clinic/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Long: `Browse appointments interactively. Logs go to log.file when it is set and
are discarded otherwise.`,
		Example: `
clinic ui
clinic ui --date today
`,
		Args: cobra.NoArgs,
		RunE: runE(oo, true, func(ctx context.Context, e *env) error {
			if err := fo.Apply(e.store); err != nil {
				return err
			}
			i := ui.UI{
				Service:        e.svc,
				Store:          e.store,
				SearchDebounce: e.cfg.SearchDebounce,
				Live:           e.cfg.Source == config.SourceLocal,
			}
			return i.Do(ctx)
		}),
	}

	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
