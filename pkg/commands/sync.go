package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/config"
	"tableflip.dev/clinic/pkg/runner/sync"
)

func addSync(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the PocketBase appointments into the local cache",
		Long: `Sync replaces the local cache with the current PocketBase snapshot, so
that "clinic --source local" and "clinic ui" can browse it offline.`,
		Example: `
clinic sync --source pocketbase
`,
		Args: cobra.NoArgs,
		RunE: runE(oo, false, func(ctx context.Context, e *env) error {
			if e.cfg.Source != config.SourcePocketBase {
				return errors.New("sync needs --source pocketbase")
			}
			s := sync.Sync{Service: e.svc}
			return s.Do(ctx)
		}),
	}

	topLevel.AddCommand(cmd)
}
