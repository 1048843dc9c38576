// Package ui starts the interactive appointment book.
package ui

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"tableflip.dev/clinic/pkg/app"
	tuiapp "tableflip.dev/clinic/pkg/tui/app"
	"tableflip.dev/clinic/pkg/viewstate"
)

// ErrNotTerminal is returned when stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

type UI struct {
	Service *app.Service
	Store   *viewstate.Store

	SearchDebounce time.Duration
	// Live reloads the view when the local cache changes on disk.
	Live bool
}

func (u *UI) Do(ctx context.Context) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}
	return tuiapp.Run(ctx, u.Service, u.Store, tuiapp.Options{
		SearchDebounce: u.SearchDebounce,
		Watch:          u.Live && u.Service.Cache != nil,
	})
}
