package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
)

// runE sets up the environment for a command and routes its error through
// the output options.
func runE(oo *options.OutputOptions, interactive bool, fn func(ctx context.Context, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		e, err := setup(ctx, interactive)
		if err != nil {
			return oo.HandleError(err)
		}
		defer e.Close()
		return oo.HandleError(fn(ctx, e))
	}
}
