package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/backend"
	"tableflip.dev/clinic/pkg/viewstate"
)

type memorySource struct {
	mu        sync.Mutex
	counter   int
	records   map[string]appointment.Record
	listErr   error
	updateErr error
	lists     int
}

func newMemorySource(records ...appointment.Record) *memorySource {
	ms := &memorySource{records: make(map[string]appointment.Record)}
	for _, r := range records {
		if r.ID == "" {
			r.ID = ms.newID()
		}
		ms.records[r.ID] = r.Clone()
	}
	return ms
}

func (m *memorySource) newID() string {
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

func (m *memorySource) List(_ context.Context) (backend.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.listErr != nil {
		return backend.Page{}, m.listErr
	}
	items := make([]appointment.Record, 0, len(m.records))
	for _, r := range m.records {
		items = append(items, r.Clone())
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return backend.Page{Items: items, Page: 1, PerPage: len(items), TotalPages: 1, TotalItems: len(items)}, nil
}

func (m *memorySource) UpdateStatus(_ context.Context, id string, status appointment.Status) (appointment.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return appointment.Record{}, m.updateErr
	}
	r, ok := m.records[id]
	if !ok {
		return appointment.Record{}, backend.ErrNotFound
	}
	r.Status = status
	m.records[id] = r
	return r.Clone(), nil
}

func (m *memorySource) Create(_ context.Context, r appointment.Record) (appointment.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = m.newID()
	}
	m.records[r.ID] = r.Clone()
	return r.Clone(), nil
}

func seeded() *memorySource {
	return newMemorySource(
		appointment.Record{ID: "a", Date: "2024-03-06T09:00:00Z", Status: appointment.StatusPending},
		appointment.Record{ID: "b", Date: "2024-03-06T10:00:00Z", Status: "mystery"},
	)
}

func newStore() *viewstate.Store {
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)
	return viewstate.New(viewstate.WithClock(func() time.Time { return now }), viewstate.WithLocation(time.UTC))
}

func TestRefreshNormalizesSnapshot(t *testing.T) {
	svc := &Service{Source: seeded(), Log: zerolog.Nop()}
	st := newStore()
	if err := svc.Refresh(context.Background(), st); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if st.Loading() || len(st.Appointments()) != 2 {
		t.Fatalf("unexpected store state: loading=%v n=%d", st.Loading(), len(st.Appointments()))
	}
	for _, r := range st.Appointments() {
		if r.ID == "b" && r.Status != appointment.StatusPending {
			t.Fatalf("expected unknown status to become pending, got %s", r.Status)
		}
	}
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	src := seeded()
	svc := &Service{Source: src, Log: zerolog.Nop()}
	st := newStore()
	if err := svc.Refresh(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("network down")
	src.listErr = boom
	if err := svc.Refresh(context.Background(), st); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !errors.Is(st.Err(), boom) || len(st.Appointments()) != 2 || st.Loading() {
		t.Fatal("fetch failure should be recorded without dropping the snapshot")
	}
}

func TestUpdateStatusSuccessRefetchesAndCloses(t *testing.T) {
	src := seeded()
	svc := &Service{Source: src, Log: zerolog.Nop()}
	st := newStore()
	ctx := context.Background()
	if err := svc.Refresh(ctx, st); err != nil {
		t.Fatal(err)
	}
	st.Select("a")
	before := src.lists

	if _, err := svc.UpdateStatus(ctx, st, "a", appointment.StatusConfirmed); err != nil {
		t.Fatalf("update: %v", err)
	}
	if src.lists != before+1 {
		t.Fatalf("expected one refetch, got %d", src.lists-before)
	}
	if st.DetailsOpen() {
		t.Fatal("details should close after a confirmed update")
	}
	for _, r := range st.Appointments() {
		if r.ID == "a" && r.Status != appointment.StatusConfirmed {
			t.Fatalf("snapshot not refreshed: %s", r.Status)
		}
	}
}

func TestUpdateStatusFailureLeavesState(t *testing.T) {
	src := seeded()
	svc := &Service{Source: src, Log: zerolog.Nop()}
	st := newStore()
	ctx := context.Background()
	if err := svc.Refresh(ctx, st); err != nil {
		t.Fatal(err)
	}
	st.Select("a")
	src.updateErr = errors.New("forbidden")
	before := src.lists

	if _, err := svc.UpdateStatus(ctx, st, "a", appointment.StatusCompleted); err == nil {
		t.Fatal("expected an error")
	}
	if st.UpdateErr() == nil || !st.DetailsOpen() || src.lists != before {
		t.Fatal("failed update must keep details open, record the error and skip the refetch")
	}
	sel, _ := st.Selected()
	if sel.Status != appointment.StatusPending {
		t.Fatalf("status must be unchanged, got %s", sel.Status)
	}
}

func TestUpdateStatusEveryPair(t *testing.T) {
	ctx := context.Background()
	for _, from := range appointment.Statuses() {
		for _, to := range appointment.Statuses() {
			if from == to {
				continue
			}
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				src := newMemorySource(appointment.Record{ID: "a", Date: "2024-03-06T09:00:00Z", Status: from})
				svc := &Service{Source: src, Log: zerolog.Nop()}
				st := newStore()
				if err := svc.Refresh(ctx, st); err != nil {
					t.Fatal(err)
				}
				st.Select("a")

				updated, err := svc.UpdateStatus(ctx, st, "a", to)
				if err != nil {
					t.Fatalf("update: %v", err)
				}
				if updated.Status != to {
					t.Fatalf("source returned %s, want %s", updated.Status, to)
				}
				got := st.Appointments()
				if len(got) != 1 || got[0].Status != to {
					t.Fatalf("refetched snapshot %+v, want status %s", got, to)
				}
				if st.DetailsOpen() || st.UpdateErr() != nil {
					t.Fatal("details should close with no update error")
				}
			})
		}
	}
}

func TestUpdateStatusRefetchFailureStillSucceeds(t *testing.T) {
	src := seeded()
	svc := &Service{Source: src, Log: zerolog.Nop()}
	st := newStore()
	ctx := context.Background()
	if err := svc.Refresh(ctx, st); err != nil {
		t.Fatal(err)
	}
	st.Select("a")
	boom := errors.New("network down")
	src.listErr = boom

	updated, err := svc.UpdateStatus(ctx, st, "a", appointment.StatusCompleted)
	if err != nil {
		t.Fatalf("confirmed update reported as failure: %v", err)
	}
	if updated.Status != appointment.StatusCompleted || src.records["a"].Status != appointment.StatusCompleted {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !errors.Is(st.Err(), boom) {
		t.Fatalf("expected fetch error on the store, got %v", st.Err())
	}
	if st.UpdateErr() != nil || st.DetailsOpen() {
		t.Fatal("a stored update should clear the update error and close details")
	}
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	src := seeded()
	svc := &Service{Source: src, Log: zerolog.Nop()}
	st := newStore()
	_, err := svc.UpdateStatus(context.Background(), st, "a", "teleported")
	if !errors.Is(err, appointment.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if src.records["a"].Status != appointment.StatusPending {
		t.Fatal("source must not be called with an invalid status")
	}
}

func TestCreateDefaults(t *testing.T) {
	src := newMemorySource()
	svc := &Service{Source: src, Log: zerolog.Nop()}
	st := newStore()
	got, err := svc.Create(context.Background(), st, appointment.Record{Date: "2024-03-07T09:00:00Z", Type: " Cleaning "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Status != appointment.StatusPending || got.Duration != appointment.DefaultDuration || got.Type != "Cleaning" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if len(st.Appointments()) != 1 {
		t.Fatal("expected refetch after create")
	}
	if _, err := svc.Create(context.Background(), st, appointment.Record{Date: "whenever"}); err == nil {
		t.Fatal("expected malformed date to be rejected")
	}
}

func TestNoSource(t *testing.T) {
	svc := &Service{Log: zerolog.Nop()}
	st := newStore()
	if err := svc.Refresh(context.Background(), st); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if _, err := svc.Sync(context.Background()); !errors.Is(err, ErrNoCache) {
		t.Fatalf("expected ErrNoCache, got %v", err)
	}
}

func TestBuildReport(t *testing.T) {
	all := []appointment.Record{
		{ID: "done", Date: "2024-03-04T09:00:00Z", Status: appointment.StatusCompleted},
		{ID: "forgotten", Date: "2024-03-04T10:00:00Z", Status: appointment.StatusConfirmed},
		{ID: "later", Date: "2024-03-06T15:00:00Z", Status: appointment.StatusPending},
		{ID: "outside", Date: "2024-02-01T09:00:00Z", Status: appointment.StatusPending},
		{ID: "bad", Date: "soon", Status: appointment.StatusPending},
	}
	since := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, time.March, 9, 23, 59, 59, 0, time.UTC)
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)

	r := BuildReport(all, since, until, now)
	if r.Stats.Total != 3 || r.Stats.Completed() != 1 {
		t.Fatalf("unexpected stats: %+v", r.Stats)
	}
	if len(r.Days) != 2 || r.Days[0].Key != "2024-03-04" {
		t.Fatalf("unexpected days: %+v", r.Days)
	}
	if len(r.Outstanding) != 1 || r.Outstanding[0].ID != "forgotten" {
		t.Fatalf("unexpected outstanding: %+v", r.Outstanding)
	}
}

func TestSubmitStatusDoesNotTouchStore(t *testing.T) {
	src := seeded()
	svc := &Service{Source: src, Log: zerolog.Nop()}
	got, err := svc.SubmitStatus(context.Background(), "a", appointment.StatusPending, appointment.StatusInProgress)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Status != appointment.StatusInProgress || src.lists != 0 {
		t.Fatalf("unexpected result %+v after %d lists", got, src.lists)
	}
	if _, err := svc.SubmitStatus(context.Background(), "", "", appointment.StatusCompleted); err == nil {
		t.Fatal("expected empty id to be rejected")
	}
}
