// Package viewstate holds the user-facing view state of the appointment book
// and derives the filtered, grouped and calendar projections from it.
//
// A Store is not safe for concurrent use. It is owned by a single writer: the
// TUI event loop or the goroutine running a CLI command.
package viewstate

import (
	"time"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/calendar"
	"tableflip.dev/clinic/pkg/dateutil"
	"tableflip.dev/clinic/pkg/filter"
	"tableflip.dev/clinic/pkg/viewmodel"
)

// Store is the explicit view state. Derived readers are recomputed lazily and
// memoized until the next action or until the calendar day changes.
type Store struct {
	now func() time.Time
	loc *time.Location

	filters     filter.Filters
	raw         []appointment.Record
	loading     bool
	fetchErr    error
	updateErr   error
	selectedID  string
	detailsOpen bool

	revision uint64
	memo     memo
}

type memoKey struct {
	revision uint64
	today    string
}

type memo struct {
	key      memoKey
	valid    bool
	filtered []appointment.Record
	agenda   *viewmodel.Agenda
	stats    *appointment.Stats
	calendar map[string][]viewmodel.DayBucket
}

// Option configures a Store.
type Option func(*Store)

// WithClock injects the clock used for "today" comparisons.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the location calendar dates are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New returns an empty store with default filters in list mode.
func New(opts ...Option) *Store {
	s := &Store{
		now:     time.Now,
		loc:     time.Local,
		filters: filter.Default(),
		raw:     []appointment.Record{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Now is the store clock in the store location.
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

// Location returns the evaluation location.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Formatter returns a date formatter bound to the store clock.
func (s *Store) Formatter() dateutil.Formatter {
	return dateutil.Formatter{Location: s.loc, Now: s.now}
}

func (s *Store) touch() {
	s.revision++
}

// Actions.

// SetAppointments replaces the snapshot wholesale and clears the loading flag
// and fetch error. A selection that disappeared from the snapshot is dropped.
func (s *Store) SetAppointments(records []appointment.Record) {
	s.raw = appointment.CloneAll(records)
	if s.raw == nil {
		s.raw = []appointment.Record{}
	}
	s.loading = false
	s.fetchErr = nil
	if s.selectedID != "" {
		if _, ok := s.find(s.selectedID); !ok {
			s.selectedID = ""
			s.detailsOpen = false
		}
	}
	s.touch()
}

// SetLoading marks a fetch in flight.
func (s *Store) SetLoading(loading bool) {
	s.loading = loading
	s.touch()
}

// SetError records a fetch failure. The snapshot is kept.
func (s *Store) SetError(err error) {
	s.fetchErr = err
	s.loading = false
	s.touch()
}

// SetUpdateError records a failed status update. nil clears it.
func (s *Store) SetUpdateError(err error) {
	s.updateErr = err
	s.touch()
}

// SetSearchQuery sets the free-text query.
func (s *Store) SetSearchQuery(q string) {
	s.filters.SearchQuery = q
	s.touch()
}

// SetDateFilter selects a date bucket.
func (s *Store) SetDateFilter(d filter.DateFilter) error {
	parsed, err := filter.ParseDateFilter(string(d))
	if err != nil {
		return err
	}
	s.filters.Date = parsed
	s.touch()
	return nil
}

// SetStatusFilter selects a status or filter.StatusAll.
func (s *Store) SetStatusFilter(f filter.StatusFilter) error {
	parsed, err := filter.ParseStatusFilter(string(f))
	if err != nil {
		return err
	}
	s.filters.Status = parsed
	s.touch()
	return nil
}

// SetCustomRange sets the bounds used by filter.DateCustom.
func (s *Store) SetCustomRange(start, end string) {
	s.filters.Range = filter.DateRange{Start: start, End: end}
	s.touch()
}

// SetViewMode switches between list, agenda and calendar.
func (s *Store) SetViewMode(m filter.ViewMode) error {
	parsed, err := filter.ParseViewMode(string(m))
	if err != nil {
		return err
	}
	s.filters.Mode = parsed
	s.touch()
	return nil
}

// Select opens the details of the appointment with id. It reports false when
// the snapshot has no such appointment.
func (s *Store) Select(id string) bool {
	if _, ok := s.find(id); !ok {
		return false
	}
	s.selectedID = id
	s.detailsOpen = true
	s.updateErr = nil
	s.touch()
	return true
}

// CloseDetails hides the details view and clears the selection.
func (s *Store) CloseDetails() {
	s.selectedID = ""
	s.detailsOpen = false
	s.updateErr = nil
	s.touch()
}

// ResetFilters restores the default filters. The view mode is kept.
func (s *Store) ResetFilters() {
	mode := s.filters.Mode
	s.filters = filter.Default()
	s.filters.Mode = mode
	s.touch()
}

// Plain state.

// Filters returns the current filters.
func (s *Store) Filters() filter.Filters { return s.filters }

// Appointments returns the unfiltered snapshot. Callers must not modify it.
func (s *Store) Appointments() []appointment.Record { return s.raw }

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool { return s.loading }

// Err returns the last fetch error.
func (s *Store) Err() error { return s.fetchErr }

// UpdateErr returns the last status update error.
func (s *Store) UpdateErr() error { return s.updateErr }

// DetailsOpen reports whether the details view is visible.
func (s *Store) DetailsOpen() bool { return s.detailsOpen }

// Selected returns the selected appointment as found in the current snapshot.
func (s *Store) Selected() (appointment.Record, bool) {
	if s.selectedID == "" {
		return appointment.Record{}, false
	}
	return s.find(s.selectedID)
}

func (s *Store) find(id string) (appointment.Record, bool) {
	for _, r := range s.raw {
		if r.ID == id {
			return r, true
		}
	}
	return appointment.Record{}, false
}

// Derived readers.

func (s *Store) cache() *memo {
	now := s.Now()
	key := memoKey{revision: s.revision, today: now.Format(dateutil.KeyLayout)}
	if !s.memo.valid || s.memo.key != key {
		s.memo = memo{key: key, valid: true}
	}
	return &s.memo
}

// Filtered returns the snapshot narrowed by the active filters and sorted by
// start time.
func (s *Store) Filtered() []appointment.Record {
	m := s.cache()
	if m.filtered == nil {
		m.filtered = filter.Apply(s.raw, s.filters, s.Now())
	}
	return m.filtered
}

// ByDate groups Filtered by date key for the agenda view.
func (s *Store) ByDate() viewmodel.Agenda {
	m := s.cache()
	if m.agenda == nil {
		a := viewmodel.GroupByDate(s.Filtered(), s.loc)
		m.agenda = &a
	}
	return *m.agenda
}

// ForDay returns every appointment of the unfiltered snapshot on key.
func (s *Store) ForDay(key string) []appointment.Record {
	return viewmodel.ForDay(s.raw, key, s.loc)
}

// Calendar returns the 28-day grid around ref with the unfiltered
// appointments of each day. Search and status filters do not apply.
func (s *Store) Calendar(ref time.Time) []viewmodel.DayBucket {
	ref = ref.In(s.loc)
	m := s.cache()
	refKey := ref.Format(dateutil.KeyLayout)
	if b, ok := m.calendar[refKey]; ok {
		return b
	}
	cells := calendar.Generate(ref, s.Now())
	b := viewmodel.Buckets(cells, s.raw, s.loc)
	if m.calendar == nil {
		m.calendar = make(map[string][]viewmodel.DayBucket)
	}
	m.calendar[refKey] = b
	return b
}

// Stats summarizes Filtered.
func (s *Store) Stats() appointment.Stats {
	m := s.cache()
	if m.stats == nil {
		st := appointment.Summarize(s.Filtered())
		m.stats = &st
	}
	return *m.stats
}
