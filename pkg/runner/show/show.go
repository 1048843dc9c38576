// Package show prints a single appointment.
package show

import (
	"context"
	"fmt"

	"tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/backend"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/viewstate"
)

type Show struct {
	Service *app.Service
	Store   *viewstate.Store
	Printer *printers.PrettyPrint
	ID      string
	JSON    bool
}

func (s *Show) Do(ctx context.Context) error {
	if err := s.Service.Refresh(ctx, s.Store); err != nil {
		return err
	}
	if !s.Store.Select(s.ID) {
		return fmt.Errorf("%w: %s", backend.ErrNotFound, s.ID)
	}
	r, _ := s.Store.Selected()
	if s.JSON {
		return s.Printer.JSON(r)
	}
	s.Printer.NewLine()
	s.Printer.Details(r)
	return nil
}
