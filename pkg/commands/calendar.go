package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show four weeks of appointments as a calendar",
		Long: `Calendar prints 28 days starting on the Sunday on or before the reference
date, with the number of booked appointments per day. Every appointment is
counted; search and status filters do not apply.`,
		Example: `
clinic calendar
clinic calendar --on 3/28
`,
		Args: cobra.NoArgs,
		RunE: runE(oo, false, func(ctx context.Context, e *env) error {
			ref, err := on.GetOn(e.store.Now(), e.store.Location())
			if err != nil {
				return err
			}
			c := calendar.Calendar{
				Service: e.svc,
				Store:   e.store,
				Printer: e.printer(false),
				Ref:     ref,
				JSON:    oo.JSON,
			}
			return c.Do(ctx)
		}),
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
