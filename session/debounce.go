package session

import (
	"sync"
	"time"
)

// debouncer runs only the last function handed to Trigger, once wait has
// passed without another Trigger. A non-positive wait runs fn inline.
type debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{wait: wait}
}

func (d *debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.wait <= 0 {
		d.mu.Unlock()
		fn()
		return
	}
	d.timer = time.AfterFunc(d.wait, fn)
	d.mu.Unlock()
}

// Stop cancels a pending call. It reports whether one was pending.
func (d *debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
