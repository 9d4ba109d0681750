package service

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is how long a begun action stays active when the
// caller never ends it explicitly.
const DefaultDebounceWindow = 3 * time.Second

// Debouncer suppresses rapid duplicate invocations of a named action.
// It is safe for concurrent use. Unlike a rate limiter it has no refill
// notion: a key is either active or it is not.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	active map[string]*time.Timer
}

// NewDebouncer creates a debouncer with the given window. A non-positive
// window falls back to DefaultDebounceWindow.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{
		window: window,
		active: make(map[string]*time.Timer),
	}
}

// TryBegin reports whether the caller may proceed with the action. It
// returns false while a previous invocation of the same key is still inside
// its window. On success the key deactivates automatically after the window
// unless End is called first.
func (d *Debouncer) TryBegin(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.active[key]; ok {
		return false
	}
	d.active[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.active, key)
		d.mu.Unlock()
	})
	return true
}

// End deactivates the key immediately and cancels its pending timer, so a
// legitimate retry after a completed attempt is not blocked.
func (d *Debouncer) End(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.active[key]; ok {
		timer.Stop()
		delete(d.active, key)
	}
}
