package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType says how much of the cache a change touched.
type EventType int

const (
	// EventDayChanged means entries in one date bucket were written or erased.
	EventDayChanged EventType = iota

	// EventInvalidated means the change could not be tied to a bucket and the
	// whole snapshot has to be reloaded.
	EventInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventDayChanged:
		return "day-changed"
	case EventInvalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is one merged change notification from Watch.
type Event struct {
	Type EventType
	// Day is the yyyy-mm-dd bucket, or UndatedBucket.
	Day string
}

// WatchThrottle is the window over which filesystem events are merged.
const WatchThrottle = 100 * time.Millisecond

// Watch reports changes to the cache directory, whether made by this process
// or another one, until ctx is done or fsnotify shuts down. Events are dropped
// rather than queued when the reader falls behind.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: no base path to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: watch: %w", err)
	}
	w := &cacheWatcher{
		p:    p,
		fs:   fw,
		seen: make(map[string]bool),
		out:  make(chan Event, 64),
	}
	if err := w.addTree(p.basePath); err != nil {
		w.close()
		return nil, err
	}
	go w.run(ctx)
	return w.out, nil
}

type cacheWatcher struct {
	p    *persistence
	fs   *fsnotify.Watcher
	seen map[string]bool
	out  chan Event
}

// addTree watches root and every bucket below it; fsnotify does not recurse.
func (w *cacheWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case err != nil:
			return err
		case !d.IsDir():
			return nil
		}
		return w.add(path)
	})
}

func (w *cacheWatcher) add(dir string) error {
	dir = filepath.Clean(dir)
	if w.seen[dir] {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("store: watch %s: %w", dir, err)
	}
	w.seen[dir] = true
	return nil
}

func (w *cacheWatcher) close() {
	if err := w.fs.Close(); err != nil {
		w.p.log.Warn().Err(err).Msg("closing cache watcher")
	}
}

func (w *cacheWatcher) run(ctx context.Context) {
	merge := newCoalescer(WatchThrottle, w.emit)
	defer func() {
		merge.Stop()
		w.close()
		close(w.out)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.p.log.Debug().Err(err).Msg("cache watcher error, reloading everything")
			merge.Add(Event{Type: EventInvalidated})
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			merge.Add(w.classify(ev))
		}
	}
}

// classify maps a filesystem event onto the bucket it touched. A bucket
// directory that was just created is watched from here on.
func (w *cacheWatcher) classify(ev fsnotify.Event) Event {
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.add(ev.Name); err != nil {
				w.p.log.Warn().Err(err).Str("dir", ev.Name).Msg("bucket not watched")
			}
		}
	}
	if day := w.p.bucketForPath(ev.Name); day != "" {
		return Event{Type: EventDayChanged, Day: day}
	}
	return Event{Type: EventInvalidated}
}

func (w *cacheWatcher) emit(ev Event) {
	select {
	case w.out <- ev:
	default:
	}
}

// bucketForPath returns the first path element under the base path, which is
// the date bucket, or "" for the base path itself and anything outside it.
func (p *persistence) bucketForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	bucket, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return bucket
}

// coalescer collects events for delay after the first one and then hands
// emit either a single EventInvalidated or one EventDayChanged per day.
type coalescer struct {
	delay time.Duration
	emit  func(Event)

	mu      sync.Mutex
	timer   *time.Timer
	days    map[string]struct{}
	reload  bool
	stopped bool
}

func newCoalescer(delay time.Duration, emit func(Event)) *coalescer {
	return &coalescer{delay: delay, emit: emit, days: make(map[string]struct{})}
}

func (c *coalescer) Add(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	if ev.Type == EventInvalidated {
		c.reload = true
	} else {
		c.days[ev.Day] = struct{}{}
	}
	if c.timer == nil {
		c.timer = time.AfterFunc(c.delay, c.flush)
	}
}

// flush emits under the lock so nothing is sent once Stop has returned.
func (c *coalescer) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer = nil
	if c.stopped {
		return
	}
	days, reload := c.days, c.reload
	c.days, c.reload = make(map[string]struct{}), false

	if reload {
		c.emit(Event{Type: EventInvalidated})
		return
	}
	for _, day := range slices.Sorted(maps.Keys(days)) {
		c.emit(Event{Type: EventDayChanged, Day: day})
	}
}

func (c *coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
