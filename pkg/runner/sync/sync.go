// Package sync copies the remote snapshot into the local cache.
package sync

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/clinic/pkg/app"
)

type Sync struct {
	Service *app.Service
}

func (s *Sync) Do(ctx context.Context) error {
	n, err := s.Service.Sync(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "synced %d appointments\n", n)
	return nil
}
