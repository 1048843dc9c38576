// Package agenda provides the CLI runner for the day-grouped agenda.
package agenda

import (
	"context"

	"tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/viewstate"
)

// Agenda prints the filtered appointments grouped by day.
type Agenda struct {
	Service *app.Service
	Store   *viewstate.Store
	Printer *printers.PrettyPrint
	JSON    bool
}

func (a *Agenda) Do(ctx context.Context) error {
	if err := a.Service.Refresh(ctx, a.Store); err != nil {
		return err
	}
	agenda := a.Store.ByDate()
	if a.JSON {
		return a.Printer.JSON(agenda)
	}
	a.Printer.NewLine()
	a.Printer.Agenda(agenda)
	return nil
}
