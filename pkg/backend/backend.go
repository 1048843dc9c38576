// Package backend defines the data collaborator the appointment views read
// from and write through.
package backend

import (
	"context"
	"errors"

	"tableflip.dev/clinic/pkg/appointment"
)

// ErrNotFound is returned when an appointment id is unknown to the source.
var ErrNotFound = errors.New("backend: appointment not found")

// Page is the result of a List call.
type Page struct {
	Items      []appointment.Record `json:"items"`
	Page       int                  `json:"page"`
	PerPage    int                  `json:"perPage"`
	TotalPages int                  `json:"totalPages"`
	TotalItems int                  `json:"totalItems"`
}

// Source fetches and mutates appointments.
type Source interface {
	// List returns every appointment with the patient relation expanded.
	List(ctx context.Context) (Page, error)
	// UpdateStatus sets the status of one appointment and returns the stored record.
	UpdateStatus(ctx context.Context, id string, status appointment.Status) (appointment.Record, error)
	// Create stores a new appointment and returns it with its assigned id.
	Create(ctx context.Context, r appointment.Record) (appointment.Record, error)
}
