// Package list provides the CLI runner for the filtered appointment list.
package list

import (
	"context"

	"tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/viewstate"
)

// List fetches the snapshot and prints it narrowed by the store filters.
type List struct {
	Service *app.Service
	Store   *viewstate.Store
	Printer *printers.PrettyPrint
	JSON    bool
}

// Do runs the command.
func (l *List) Do(ctx context.Context) error {
	if err := l.Service.Refresh(ctx, l.Store); err != nil {
		return err
	}
	records := l.Store.Filtered()
	if l.JSON {
		return l.Printer.JSON(records)
	}
	l.Printer.NewLine()
	l.Printer.List(records)
	return nil
}
