package editor

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single callback after a
// quiet period. Every Trigger cancels and restarts the window and replaces
// the pending callback, so the last write wins and no intermediate state is
// ever delivered.
type Debouncer struct {
	mu      sync.Mutex
	d       time.Duration
	timer   *time.Timer
	pending func()
}

// NewDebouncer returns a debouncer with the given quiet period. A zero or
// negative duration fires synchronously on every trigger.
func NewDebouncer(d time.Duration) *Debouncer {
	return &Debouncer{d: d}
}

// Trigger schedules fn to run after the quiet period, replacing any pending
// callback.
func (db *Debouncer) Trigger(fn func()) {
	if db.d <= 0 {
		fn()
		return
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
	}
	db.pending = fn
	db.timer = time.AfterFunc(db.d, func() {
		db.mu.Lock()
		fn := db.pending
		db.pending = nil
		db.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

// Flush runs any pending callback immediately and cancels the timer.
func (db *Debouncer) Flush() {
	db.mu.Lock()
	fn := db.pending
	db.pending = nil
	if db.timer != nil {
		db.timer.Stop()
	}
	db.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels any pending callback without running it.
func (db *Debouncer) Stop() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.pending = nil
	if db.timer != nil {
		db.timer.Stop()
	}
}
