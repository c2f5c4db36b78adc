// Package debounce collapses bursts of calls into a single deferred call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs only the most recent function submitted within its window,
// once, after the window has passed without further calls. A Debouncer is
// owned by its caller; there is no shared global timer.
type Debouncer struct {
	wait time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// New returns a Debouncer with the given quiet window.
func New(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Call (re)arms the timer with fn. Any function submitted earlier that has not
// yet run is dropped. Call is a no-op after Stop.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		current := gen == d.gen && !d.stopped
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels the pending call and refuses further calls.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	// A timer that already fired but has not taken the lock sees a stale generation.
	d.gen++
}
