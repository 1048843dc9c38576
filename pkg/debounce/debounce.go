// Package debounce delays a callback until input has been quiet for a window.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period used for search input.
const DefaultWindow = 300 * time.Millisecond

// Debouncer runs the most recent callback once no new call arrived within the
// window. Each Call cancels the pending timer and starts a new one.
//
// Callbacks run on a timer goroutine. They must not mutate UI state directly;
// post a message to the owning event loop instead.
type Debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	window  time.Duration
	seq     uint64
	stopped bool
}

// New returns a Debouncer. A non-positive window falls back to DefaultWindow.
func New(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window}
}

// Window reports the configured quiet period.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Call schedules fn, replacing anything still pending.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// A Stop or a newer Call may have raced the timer firing.
		live := !d.stopped && seq == d.seq
		if live {
			d.timer = nil
		}
		d.mu.Unlock()
		if live {
			fn()
		}
	})
}

// Flush cancels the pending timer and reports whether one was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.seq++
	return true
}

// Stop cancels any pending callback. Later calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
