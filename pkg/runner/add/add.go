// Package add creates appointments from the command line.
package add

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/dateutil"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/viewstate"
)

type Add struct {
	Service *app.Service
	Store   *viewstate.Store
	Printer *printers.PrettyPrint

	Date      string
	Duration  string
	Type      string
	Status    string
	Notes     string
	PatientID string
	JSON      bool
}

func (a *Add) record() (appointment.Record, error) {
	r := appointment.Record{
		Date:      strings.TrimSpace(a.Date),
		Type:      a.Type,
		Notes:     a.Notes,
		PatientID: a.PatientID,
	}
	if a.Duration != "" {
		minutes, err := dateutil.ParseDuration(a.Duration)
		if err != nil {
			return r, fmt.Errorf("add: duration: %w", err)
		}
		r.Duration = minutes
	}
	if a.Status != "" {
		s, err := appointment.ParseStatus(a.Status)
		if err != nil {
			return r, err
		}
		r.Status = s
	}
	return r, nil
}

func (a *Add) Do(ctx context.Context) error {
	r, err := a.record()
	if err != nil {
		return err
	}
	created, err := a.Service.Create(ctx, a.Store, r)
	if err != nil {
		return err
	}
	if a.JSON {
		return a.Printer.JSON(created)
	}
	_, _ = fmt.Fprintf(color.Output, "created %s on %s at %s\n",
		color.New(color.FgHiYellow).Sprint(created.ID),
		a.Printer.Format.Date(created.Date),
		a.Printer.Format.Time(created.Date))
	return nil
}
