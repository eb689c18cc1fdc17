// Package debounce collapses rapid repeated invocations into a single
// deferred call.
//
// A Debouncer holds at most one pending call. Scheduling again replaces the
// pending call and restarts the delay (last write wins). Cancel drops the
// pending call without running it; owners must cancel when the form or search
// session they belong to is torn down, otherwise the callback can run against
// state the owner no longer considers current.
package debounce

import (
	"sync"
	"time"
)

type call[T any] struct {
	fn   func(T)
	args T
}

// Debouncer defers a callback until no new Schedule has arrived for the delay.
// The zero value is not usable; call New.
type Debouncer[T any] struct {
	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending *call[T]
	onDrop  func(T)
}

// Option configures a Debouncer.
type Option[T any] func(*Debouncer[T])

// WithDropHandler registers fn to receive the args of every pending call that
// is superseded or cancelled instead of fired. fn runs outside the lock.
func WithDropHandler[T any](fn func(T)) Option[T] {
	return func(d *Debouncer[T]) {
		d.onDrop = fn
	}
}

// New creates an idle Debouncer.
func New[T any](opts ...Option[T]) *Debouncer[T] {
	d := &Debouncer[T]{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Schedule arranges for fn(args) to run after delay, replacing any pending call.
func (d *Debouncer[T]) Schedule(fn func(T), args T, delay time.Duration) {
	d.mu.Lock()
	dropped := d.stopLocked()
	d.gen++
	gen := d.gen
	d.pending = &call[T]{fn: fn, args: args}
	d.timer = time.AfterFunc(delay, func() { d.fire(gen) })
	d.mu.Unlock()

	d.drop(dropped)
}

// Cancel drops the pending call, if any, without running it. It is safe to
// call repeatedly and with nothing pending.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	dropped := d.stopLocked()
	d.gen++
	d.mu.Unlock()

	d.drop(dropped)
}

// Flush runs the pending call immediately on the caller's goroutine and
// reports whether there was one.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	c := d.pending
	if c == nil {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.gen++
	d.mu.Unlock()

	c.fn(c.args)
	return true
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// fire runs the pending call if no Schedule, Cancel or Flush happened since
// the timer for gen was armed. Timer.Stop cannot recall a callback that has
// already started, so the generation check is what guarantees a cancelled
// call never runs.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	c := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	c.fn(c.args)
}

// stopLocked stops the timer and detaches the pending call.
// Must be called while holding d.mu.
func (d *Debouncer[T]) stopLocked() *call[T] {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	c := d.pending
	d.pending = nil
	return c
}

func (d *Debouncer[T]) drop(c *call[T]) {
	if c != nil && d.onDrop != nil {
		d.onDrop(c.args)
	}
}
