package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/appointment"
)

// AddOptions describes a new appointment.
type AddOptions struct {
	Date      string
	Duration  string
	Type      string
	Status    string
	Notes     string
	PatientID string
}

func AddAppointmentArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVar(&o.Date, "at", "",
		`Start of the appointment, example: --at="2024-03-28T14:30" or an RFC 3339 time.`)
	cmd.Flags().StringVar(&o.Duration, "for", "30m",
		`Length of the appointment, example: --for=45m or --for=1h30m.`)
	cmd.Flags().StringVarP(&o.Type, "type", "t", appointment.DefaultType,
		"Appointment type.")
	cmd.Flags().StringVar(&o.Status, "status", string(appointment.StatusPending),
		"Initial status.")
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"Free text notes.")
	cmd.Flags().StringVar(&o.PatientID, "patient", "",
		"Patient record id.")

	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return appointment.KnownTypes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("status", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return statusValues(), cobra.ShellCompDirectiveNoFileComp
	})
}

func statusValues() []string {
	out := make([]string, 0, len(appointment.Statuses()))
	for _, s := range appointment.Statuses() {
		out = append(out, string(s))
	}
	return out
}
