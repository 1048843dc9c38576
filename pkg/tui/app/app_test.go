package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	appsvc "tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/backend"
	"tableflip.dev/clinic/pkg/filter"
	"tableflip.dev/clinic/pkg/viewstate"
)

var now = time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu        sync.Mutex
	records   []appointment.Record
	updateErr error
	lists     int
}

func (f *fakeSource) List(context.Context) (backend.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return backend.Page{Items: appointment.CloneAll(f.records), TotalPages: 1, TotalItems: len(f.records)}, nil
}

func (f *fakeSource) UpdateStatus(_ context.Context, id string, status appointment.Status) (appointment.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return appointment.Record{}, f.updateErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = status
			return f.records[i].Clone(), nil
		}
	}
	return appointment.Record{}, backend.ErrNotFound
}

func (f *fakeSource) Create(_ context.Context, r appointment.Record) (appointment.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, r.Clone())
	return r, nil
}

func fixture() *fakeSource {
	return &fakeSource{records: []appointment.Record{
		{ID: "a", Date: "2024-03-13T10:00:00Z", Duration: 30, Type: "Cleaning", Status: appointment.StatusPending,
			Patient: &appointment.Patient{FirstName: "Ada", LastName: "Lovelace"}},
		{ID: "b", Date: "2024-03-13T08:00:00Z", Duration: 60, Type: "Filling", Status: appointment.StatusConfirmed,
			Patient: &appointment.Patient{FirstName: "Grace", LastName: "Hopper"}},
		{ID: "c", Date: "2024-03-20T14:00:00Z", Duration: 45, Type: "Check-up", Status: appointment.StatusCompleted,
			Patient: &appointment.Patient{FirstName: "Alan", LastName: "Turing"}},
	}}
}

func newModel(t *testing.T, src *fakeSource) *Model {
	t.Helper()
	st := viewstate.New(viewstate.WithClock(func() time.Time { return now }), viewstate.WithLocation(time.UTC))
	svc := &appsvc.Service{Source: src, Log: zerolog.Nop()}
	m := New(context.Background(), svc, st, Options{SearchDebounce: 10 * time.Millisecond})
	t.Cleanup(m.Close)
	return m
}

// loaded returns a model whose store holds the fixture snapshot.
func loaded(t *testing.T, src *fakeSource) *Model {
	t.Helper()
	m := newModel(t, src)
	m.Update(m.fetch()())
	if got := len(m.store.Appointments()); got != len(src.records) {
		t.Fatalf("expected %d appointments loaded, got %d", len(src.records), got)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSnapshotError(t *testing.T) {
	m := newModel(t, fixture())
	m.store.SetLoading(true)
	m.Update(snapshotMsg{err: errors.New("boom")})

	if m.store.Err() == nil {
		t.Fatalf("expected fetch error on the store")
	}
	if m.store.Loading() {
		t.Fatalf("expected loading to clear on error")
	}
	if !strings.Contains(m.View(), "r to retry") {
		t.Fatalf("expected retry hint in view:\n%s", m.View())
	}
}

func TestListIsSortedByStart(t *testing.T) {
	m := loaded(t, fixture())
	r, ok := m.current()
	if !ok || r.ID != "b" {
		t.Fatalf("expected cursor on earliest appointment b, got %+v", r)
	}
	m.Update(runes("j"))
	if r, _ := m.current(); r.ID != "a" {
		t.Fatalf("expected a after moving down, got %s", r.ID)
	}
	m.Update(runes("j"))
	m.Update(runes("j"))
	if r, _ := m.current(); r.ID != "c" {
		t.Fatalf("expected cursor clamped on c, got %s", r.ID)
	}
}

func TestDebouncedSearch(t *testing.T) {
	m := loaded(t, fixture())
	settled := make(chan tea.Msg, 4)
	m.SetSender(func(msg tea.Msg) { settled <- msg })

	m.Update(runes("/"))
	if m.input != modeSearch {
		t.Fatalf("expected search mode")
	}
	m.Update(runes("t"))
	m.Update(runes("u"))
	m.Update(runes("r"))

	if q := m.store.Filters().SearchQuery; q != "" {
		t.Fatalf("expected query to wait for the debounce, got %q", q)
	}

	select {
	case msg := <-settled:
		m.Update(msg)
	case <-time.After(time.Second):
		t.Fatalf("debounced search never fired")
	}
	if q := m.store.Filters().SearchQuery; q != "tur" {
		t.Fatalf("expected query tur, got %q", q)
	}
	if got := m.store.Filtered(); len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected only c to match, got %v", got)
	}
	select {
	case msg := <-settled:
		t.Fatalf("expected a single settled message, got extra %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStaleSearchIgnored(t *testing.T) {
	m := loaded(t, fixture())
	m.Update(runes("/"))
	m.Update(runes("a"))
	m.Update(runes("d"))

	m.Update(searchSettledMsg{query: "a"})
	if q := m.store.Filters().SearchQuery; q != "" {
		t.Fatalf("expected stale query to be dropped, got %q", q)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if q := m.store.Filters().SearchQuery; q != "ad" {
		t.Fatalf("expected enter to apply ad, got %q", q)
	}
}

func TestCycleFilters(t *testing.T) {
	m := loaded(t, fixture())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.store.Filters().Mode; got != filter.ModeAgenda {
		t.Fatalf("expected agenda, got %s", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.store.Filters().Mode; got != filter.ModeCalendar {
		t.Fatalf("expected calendar, got %s", got)
	}

	m.Update(runes("d"))
	if got := m.store.Filters().Date; got != filter.DateToday {
		t.Fatalf("expected today, got %s", got)
	}
	for i := 0; i < 3; i++ {
		m.Update(runes("d"))
	}
	if got := m.store.Filters().Date; got != filter.DateAll {
		t.Fatalf("expected date cycle to skip custom and wrap to all, got %s", got)
	}

	m.Update(runes("s"))
	if got := m.store.Filters().Status; got != filter.ForStatus(appointment.StatusPending) {
		t.Fatalf("expected pending status filter, got %s", got)
	}

	m.Update(runes("x"))
	f := m.store.Filters()
	if f.Status != filter.StatusAll || f.Mode != filter.ModeCalendar {
		t.Fatalf("expected reset to keep the view mode, got %+v", f)
	}
}

func TestCustomRange(t *testing.T) {
	m := loaded(t, fixture())
	m.Update(runes("c"))
	for _, r := range "2024-03-20..2024-03-20" {
		m.Update(runes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	f := m.store.Filters()
	if f.Date != filter.DateCustom || f.Range.Start != "2024-03-20" || f.Range.End != "2024-03-20" {
		t.Fatalf("unexpected filters %+v", f)
	}
	if got := m.store.Filtered(); len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected only c in range, got %v", got)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
		ok         bool
	}{
		{in: "2024-03-01..2024-03-31", start: "2024-03-01", end: "2024-03-31", ok: true},
		{in: " 2024-03-01 .. ", start: "2024-03-01", ok: true},
		{in: "2024-03-01", ok: false},
	}
	for _, tt := range tests {
		start, end, ok := parseRange(tt.in)
		if start != tt.start || end != tt.end || ok != tt.ok {
			t.Errorf("parseRange(%q) = %q, %q, %v", tt.in, start, end, ok)
		}
	}
}

func TestStatusChange(t *testing.T) {
	src := fixture()
	m := loaded(t, src)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if sel, ok := m.store.Selected(); !ok || sel.ID != "b" {
		t.Fatalf("expected b selected, got %+v", sel)
	}

	// 3 is completed in legend order.
	_, cmd := m.Update(runes("3"))
	if cmd == nil || !m.pending {
		t.Fatalf("expected a pending status command")
	}
	msg := cmd()
	_, cmd = m.Update(msg)
	if m.store.DetailsOpen() {
		t.Fatalf("expected details to close after a successful update")
	}
	if cmd == nil {
		t.Fatalf("expected a refetch after the update")
	}
	m.Update(cmd())

	for _, r := range m.store.Appointments() {
		if r.ID == "b" && r.Status != appointment.StatusCompleted {
			t.Fatalf("expected b completed after refetch, got %s", r.Status)
		}
	}
	if src.lists != 2 {
		t.Fatalf("expected two fetches, got %d", src.lists)
	}
}

func TestStatusChangeFailureKeepsState(t *testing.T) {
	src := fixture()
	src.updateErr = errors.New("offline")
	m := loaded(t, src)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := m.Update(runes("2"))
	m.Update(cmd())

	if !m.store.DetailsOpen() {
		t.Fatalf("expected details to stay open on failure")
	}
	if m.store.UpdateErr() == nil {
		t.Fatalf("expected update error on the store")
	}
	if m.pending {
		t.Fatalf("expected pending to clear")
	}
	if !strings.Contains(m.View(), "offline") {
		t.Fatalf("expected the error in the details pane:\n%s", m.View())
	}
	if r, _ := m.store.Selected(); r.Status != appointment.StatusConfirmed {
		t.Fatalf("expected snapshot untouched, got %s", r.Status)
	}
}

func TestCalendarNavigation(t *testing.T) {
	m := loaded(t, fixture())
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	buckets := m.store.Calendar(m.calRef)
	if !buckets[m.calCursor].IsToday {
		t.Fatalf("expected the cursor to start on today")
	}
	// Day buckets keep snapshot order.
	if r, ok := m.current(); !ok || r.ID != "a" {
		t.Fatalf("expected first appointment of today, got %+v", r)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if r, ok := m.current(); !ok || r.ID != "c" {
		t.Fatalf("expected a week later to hold c, got %+v", r)
	}

	ref := m.calRef
	m.Update(runes("]"))
	if got := m.calRef.Sub(ref); got != 28*24*time.Hour {
		t.Fatalf("expected a four week shift, got %s", got)
	}
	m.Update(runes("t"))
	if !m.store.Calendar(m.calRef)[m.calCursor].IsToday {
		t.Fatalf("expected t to jump back to today")
	}
	if !strings.Contains(m.View(), "March 2024") {
		t.Fatalf("expected month title in view:\n%s", m.View())
	}
}

func TestQuitStopsDebouncer(t *testing.T) {
	m := loaded(t, fixture())
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	fired := false
	m.debouncer.Call(func() { fired = true })
	time.Sleep(30 * time.Millisecond)
	if fired {
		t.Fatalf("expected no callback after quit")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := loaded(t, fixture())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Browsing") {
		t.Fatalf("expected help overlay:\n%s", m.View())
	}
	// q closes help rather than quitting.
	_, cmd := m.Update(runes("q"))
	if cmd != nil || m.showHelp {
		t.Fatalf("expected q to close help only")
	}
}
