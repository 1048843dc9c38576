package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/backend"
	"tableflip.dev/clinic/pkg/store"
	"tableflip.dev/clinic/pkg/viewstate"
)

// Service provides the appointment operations shared by the CLI and the TUI.
// It wraps the data source so every caller goes through the same mutation
// entry point.
type Service struct {
	Source backend.Source
	// Cache, when set and distinct from Source, receives write-through copies
	// of remote changes and is the target of Sync.
	Cache store.Persistence
	Log   zerolog.Logger
}

var (
	ErrNoSource = errors.New("app: no source configured")
	ErrNoCache  = errors.New("app: no cache configured")
)

// Fetch lists every appointment from the source, normalizing records the
// views cannot interpret.
func (s *Service) Fetch(ctx context.Context) ([]appointment.Record, error) {
	if s.Source == nil {
		return nil, ErrNoSource
	}
	page, err := s.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: fetch appointments: %w", err)
	}
	items := page.Items
	for i := range items {
		if items[i].Normalize() {
			s.Log.Warn().Str("id", items[i].ID).Msg("appointment has unknown status, treating as pending")
		}
	}
	if items == nil {
		items = []appointment.Record{}
	}
	return items, nil
}

// Refresh replaces the store snapshot with a fresh fetch. A failure is
// recorded on the store and returned; the previous snapshot is kept.
func (s *Service) Refresh(ctx context.Context, st *viewstate.Store) error {
	st.SetLoading(true)
	items, err := s.Fetch(ctx)
	if err != nil {
		st.SetError(err)
		return err
	}
	st.SetAppointments(items)
	s.Log.Debug().Int("count", len(items)).Msg("snapshot refreshed")
	return nil
}

// UpdateStatus is the single entry point for status changes. The status is
// validated, sent to the source, and only after the source confirms is the
// snapshot refetched and the details view closed. On failure the store keeps
// its state and carries the error. A failed refetch after a confirmed update
// is not an update failure: it is left on the store as a fetch error.
func (s *Service) UpdateStatus(ctx context.Context, st *viewstate.Store, id string, status appointment.Status) (appointment.Record, error) {
	var from appointment.Status
	for _, r := range st.Appointments() {
		if r.ID == id {
			from = r.Status
			break
		}
	}
	updated, err := s.SubmitStatus(ctx, id, from, status)
	if err != nil {
		st.SetUpdateError(err)
		return appointment.Record{}, err
	}

	st.SetUpdateError(nil)
	st.CloseDetails()
	if err := s.Refresh(ctx, st); err != nil {
		// The change is stored; the stale snapshot is reported through st.Err.
		s.Log.Warn().Err(err).Str("id", id).Msg("refetch after status update failed")
	}
	return updated, nil
}

// SubmitStatus validates the move from -> to and sends it to the source
// without touching any view state. An empty from skips the transition check.
// The caller applies the result to its store the way UpdateStatus does.
func (s *Service) SubmitStatus(ctx context.Context, id string, from, to appointment.Status) (appointment.Record, error) {
	if s.Source == nil {
		return appointment.Record{}, ErrNoSource
	}
	if strings.TrimSpace(id) == "" {
		return appointment.Record{}, errors.New("app: appointment id required")
	}
	if !to.Valid() {
		return appointment.Record{}, fmt.Errorf("%w: %q", appointment.ErrInvalidStatus, to)
	}
	if from != "" {
		if err := appointment.ValidateTransition(from, to); err != nil {
			return appointment.Record{}, err
		}
	}

	updated, err := s.Source.UpdateStatus(ctx, id, to)
	if err != nil {
		s.Log.Warn().Err(err).Str("id", id).Str("status", string(to)).Msg("status update failed")
		return appointment.Record{}, fmt.Errorf("app: update status of %s: %w", id, err)
	}
	s.Log.Info().Str("id", id).Str("status", string(to)).Msg("status updated")
	s.writeThrough(updated)
	return updated, nil
}

// Create validates r, stores it through the source and refetches.
func (s *Service) Create(ctx context.Context, st *viewstate.Store, r appointment.Record) (appointment.Record, error) {
	if s.Source == nil {
		return appointment.Record{}, ErrNoSource
	}
	if _, err := appointment.ParseDate(r.Date); err != nil {
		return appointment.Record{}, fmt.Errorf("app: create: %w", err)
	}
	if r.Status == "" {
		r.Status = appointment.StatusPending
	}
	if !r.Status.Valid() {
		return appointment.Record{}, fmt.Errorf("app: create: %w: %q", appointment.ErrInvalidStatus, r.Status)
	}
	if r.Duration <= 0 {
		r.Duration = appointment.DefaultDuration
	}
	r.Type = strings.TrimSpace(r.Type)

	created, err := s.Source.Create(ctx, r)
	if err != nil {
		return appointment.Record{}, fmt.Errorf("app: create: %w", err)
	}
	s.Log.Info().Str("id", created.ID).Str("date", created.Date).Msg("appointment created")
	s.writeThrough(created)
	if st != nil {
		if err := s.Refresh(ctx, st); err != nil {
			return created, err
		}
	}
	return created, nil
}

// Sync copies the full remote snapshot into the local cache.
func (s *Service) Sync(ctx context.Context) (int, error) {
	if s.Cache == nil {
		return 0, ErrNoCache
	}
	items, err := s.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.Cache.ReplaceAll(ctx, items); err != nil {
		return 0, fmt.Errorf("app: sync: %w", err)
	}
	s.Log.Info().Int("count", len(items)).Msg("cache synced")
	return len(items), nil
}

// Watch subscribes to cache change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Cache == nil {
		return nil, ErrNoCache
	}
	return s.Cache.Watch(ctx)
}

func (s *Service) writeThrough(r appointment.Record) {
	if s.Cache == nil || s.cacheIsSource() {
		return
	}
	if err := s.Cache.Store(&r); err != nil {
		s.Log.Warn().Err(err).Str("id", r.ID).Msg("cache write-through failed")
	}
}

func (s *Service) cacheIsSource() bool {
	src, ok := s.Source.(store.Persistence)
	return ok && src == s.Cache
}
