// Package calendar provides the CLI runner for the four week calendar.
package calendar

import (
	"context"
	"time"

	"tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/viewstate"
)

// Calendar prints the 28-day grid starting at the Sunday on or before Ref.
// The grid shows every appointment; search and status filters do not apply.
type Calendar struct {
	Service *app.Service
	Store   *viewstate.Store
	Printer *printers.PrettyPrint
	// Ref defaults to today.
	Ref  time.Time
	JSON bool
}

func (c *Calendar) Do(ctx context.Context) error {
	if err := c.Service.Refresh(ctx, c.Store); err != nil {
		return err
	}
	ref := c.Ref
	if ref.IsZero() {
		ref = c.Store.Now()
	}
	buckets := c.Store.Calendar(ref)
	if c.JSON {
		return c.Printer.JSON(buckets)
	}
	c.Printer.NewLine()
	c.Printer.Calendar(ref, buckets)
	return nil
}
