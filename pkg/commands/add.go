package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/runner/add"
	"tableflip.dev/clinic/pkg/snake"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a new appointment",
		Example: `
clinic add --at 2024-03-28T14:30 --type "Teeth Cleaning"
clinic add --at 2024-03-28T09:00 --for 1h --patient p9x0a1 --notes "bring x-rays"
clinic add -i
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return snake.PromptFlags(cmd, "at")
			}
			return nil
		},
		RunE: runE(oo, false, func(ctx context.Context, e *env) error {
			if ao.Date == "" {
				return errors.New("--at is required")
			}
			a := add.Add{
				Service:   e.svc,
				Store:     e.store,
				Printer:   e.printer(false),
				Date:      ao.Date,
				Duration:  ao.Duration,
				Type:      ao.Type,
				Status:    ao.Status,
				Notes:     ao.Notes,
				PatientID: ao.PatientID,
				JSON:      oo.JSON,
			}
			return a.Do(ctx)
		}),
	}

	options.AddAppointmentArgs(cmd, ao)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
