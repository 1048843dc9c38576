// Package stats prints status counts over the filtered snapshot.
package stats

import (
	"context"

	"tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/viewstate"
)

type Stats struct {
	Service *app.Service
	Store   *viewstate.Store
	Printer *printers.PrettyPrint
	JSON    bool
}

func (s *Stats) Do(ctx context.Context) error {
	if err := s.Service.Refresh(ctx, s.Store); err != nil {
		return err
	}
	st := s.Store.Stats()
	if s.JSON {
		return s.Printer.JSON(st)
	}
	s.Printer.NewLine()
	s.Printer.Stats(st)
	return nil
}
