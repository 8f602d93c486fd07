package util

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into a single invocation after the
// configured delay; only the most recent function survives a burst. Saves
// scheduled through a Debouncer are best-effort: a crash before the delay
// elapses loses the pending call, so callers needing durability must
// Flush explicitly.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	fn    func()
	timer *time.Timer
}

// NewDebouncer constructs a Debouncer with the given delay. A zero or
// negative delay runs every call synchronously.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the delay, replacing any call still
// pending from an earlier Trigger.
func (d *Debouncer) Trigger(fn func()) {
	if d.delay <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush runs the pending call immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop discards the pending call without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
