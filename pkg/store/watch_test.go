package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/clinic/pkg/appointment"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func load(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()}, zerolog.Nop())
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func TestPersistenceWatchEmitsDayChanges(t *testing.T) {
	p := load(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	r := appointment.Record{Date: "2024-03-01", Status: appointment.StatusPending}
	if err := p.Store(&r); err != nil {
		t.Fatalf("store record: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventDayChanged {
				if evt.Day != "2024-03-01" {
					t.Fatalf("expected day '2024-03-01', got %q", evt.Day)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for day change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p := load(t)
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestCoalescerMergesBurst(t *testing.T) {
	var mu sync.Mutex
	var got []Event
	done := make(chan struct{}, 1)
	c := newCoalescer(20*time.Millisecond, func(ev Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
	})
	defer c.Stop()

	for i := 0; i < 10; i++ {
		c.Add(Event{Type: EventDayChanged, Day: "2024-03-01"})
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("coalescer never flushed")
	}
	time.Sleep(40 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0].Day != "2024-03-01" {
		t.Fatalf("expected one merged event, got %+v", got)
	}
}

func TestCoalescerOrdersDays(t *testing.T) {
	out := make(chan Event, 4)
	c := newCoalescer(10*time.Millisecond, func(ev Event) { out <- ev })
	defer c.Stop()
	c.Add(Event{Type: EventDayChanged, Day: "2024-03-09"})
	c.Add(Event{Type: EventDayChanged, Day: "2024-03-01"})

	for _, want := range []string{"2024-03-01", "2024-03-09"} {
		select {
		case ev := <-out:
			if ev.Day != want {
				t.Fatalf("expected %s, got %+v", want, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("missing event for %s", want)
		}
	}
}

func TestCoalescerInvalidationWins(t *testing.T) {
	out := make(chan Event, 4)
	c := newCoalescer(10*time.Millisecond, func(ev Event) { out <- ev })
	defer c.Stop()
	c.Add(Event{Type: EventDayChanged, Day: "2024-03-01"})
	c.Add(Event{Type: EventInvalidated})
	select {
	case ev := <-out:
		if ev.Type != EventInvalidated {
			t.Fatalf("expected invalidation, got %v", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
	select {
	case ev := <-out:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestCoalescerSilentAfterStop(t *testing.T) {
	out := make(chan Event, 1)
	c := newCoalescer(5*time.Millisecond, func(ev Event) { out <- ev })
	c.Add(Event{Type: EventDayChanged, Day: "2024-03-01"})
	c.Stop()
	c.Add(Event{Type: EventInvalidated})
	select {
	case ev := <-out:
		t.Fatalf("event after stop: %+v", ev)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestBucketForPath(t *testing.T) {
	p := &persistence{basePath: filepath.Join("var", "clinic")}
	tests := map[string]string{
		filepath.Join("var", "clinic"):                       "",
		filepath.Join("var", "clinic", "2024-03-01"):         "2024-03-01",
		filepath.Join("var", "clinic", "2024-03-01", "abc"):  "2024-03-01",
		filepath.Join("var", "clinic", UndatedBucket, "abc"): UndatedBucket,
		filepath.Join("var", "other", "2024-03-01"):          "",
	}
	for path, want := range tests {
		if got := p.bucketForPath(path); got != want {
			t.Errorf("bucketForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
