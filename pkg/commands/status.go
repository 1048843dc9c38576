package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/commands/options"
	"tableflip.dev/clinic/pkg/runner/status"
	"tableflip.dev/clinic/pkg/snake"
)

func addStatus(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}
	var id, to string

	long := strings.Builder{}
	long.WriteString("Move an appointment to a new status.\n\n")
	long.WriteString("Statuses:\n")
	for _, s := range appointment.Statuses() {
		long.WriteString(fmt.Sprintf("  %-12s %s\n", s, s.Label()))
	}

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of an appointment",
		Long:  long.String(),
		Example: `
clinic status 8x2kq0f3m1c7a9d confirmed
clinic status 8x2kq0f3m1c7a9d "No Show"
clinic status -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				if len(args) > 0 {
					id = args[0]
				}
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return err
			}
			id, to = args[0], args[1]
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return completeIDs(cmd, args, toComplete)
			case 1:
				return statusCompletions(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(oo, false, func(ctx context.Context, e *env) error {
				if i.Interactive {
					var err error
					if id, to, err = pickStatus(ctx, cmd, e, id); err != nil {
						return err
					}
				}
				s := status.Status{
					Service: e.svc,
					Store:   e.store,
					Printer: e.printer(false),
					ID:      id,
					Status:  to,
					JSON:    oo.JSON,
				}
				return s.Do(ctx)
			})(cmd, args)
		},
	}

	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

// pickStatus prompts for the appointment, unless id is already known, and
// for its next status.
func pickStatus(ctx context.Context, cmd *cobra.Command, e *env, id string) (string, string, error) {
	if err := e.svc.Refresh(ctx, e.store); err != nil {
		return "", "", err
	}
	var current appointment.Record
	if id == "" || !e.store.Select(id) {
		r, err := snake.PickAppointment(cmd, e.store.Filtered(), e.store.Formatter())
		if err != nil {
			return "", "", err
		}
		current = r
	} else {
		current, _ = e.store.Selected()
	}
	next, err := snake.PickStatus(cmd, current.Status)
	if err != nil {
		return "", "", err
	}
	return current.ID, string(next), nil
}
