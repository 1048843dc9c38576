// Package statuses provides CLI helpers to display the status legend.
package statuses

import (
	"context"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/printers"
)

// Statuses prints every appointment status and where it can move.
type Statuses struct {
	Printer *printers.PrettyPrint
	JSON    bool
}

type entry struct {
	Value   appointment.Status   `json:"value"`
	Label   string               `json:"label"`
	MovesTo []appointment.Status `json:"movesTo"`
}

// Do renders the legend to stdout.
func (s *Statuses) Do(_ context.Context) error {
	if s.JSON {
		all := appointment.Statuses()
		out := make([]entry, 0, len(all))
		for _, from := range all {
			e := entry{Value: from, Label: from.Label(), MovesTo: []appointment.Status{}}
			for _, to := range all {
				if to != from && appointment.CanTransition(from, to) {
					e.MovesTo = append(e.MovesTo, to)
				}
			}
			out = append(out, e)
		}
		return s.Printer.JSON(out)
	}
	s.Printer.NewLine()
	s.Printer.Legend()
	s.Printer.NewLine()
	return nil
}
