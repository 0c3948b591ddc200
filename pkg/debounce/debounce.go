// Package debounce coalesces bursts of calls into one, fired after a quiet
// period.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used for search input.
const DefaultDelay = 500 * time.Millisecond

// Debouncer calls fn with the argument of the last Trigger once delay has
// passed without another Trigger.
type Debouncer[T any] struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func(T)
	timer *time.Timer
	gen   uint64
}

func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Trigger restarts the timer. Only the most recent arg is delivered.
func (d *Debouncer[T]) Trigger(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A Trigger or Stop that raced the timer wins.
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn(arg)
	})
}

// Stop cancels a pending call, if any.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
