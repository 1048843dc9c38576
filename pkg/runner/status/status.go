// Package status changes the status of an appointment.
package status

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/viewstate"
)

// Status moves the appointment ID to Status once the source confirms.
type Status struct {
	Service *app.Service
	Store   *viewstate.Store
	Printer *printers.PrettyPrint
	ID      string
	Status  string
	JSON    bool
}

func (s *Status) Do(ctx context.Context) error {
	next, err := appointment.ParseStatus(s.Status)
	if err != nil {
		return err
	}
	if err := s.Service.Refresh(ctx, s.Store); err != nil {
		return err
	}
	prev := appointment.Status("")
	if s.Store.Select(s.ID) {
		r, _ := s.Store.Selected()
		prev = r.Status
	}
	updated, err := s.Service.UpdateStatus(ctx, s.Store, s.ID, next)
	if err != nil {
		return err
	}
	if s.JSON {
		return s.Printer.JSON(updated)
	}
	from := "?"
	if prev != "" {
		from = printers.Status(prev)
	}
	_, _ = fmt.Fprintf(color.Output, "%s %s → %s\n", updated.ID, from, printers.Status(updated.Status))
	return nil
}
