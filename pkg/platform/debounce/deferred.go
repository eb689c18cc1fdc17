package debounce

import (
	"context"
	"sync"
	"time"

	"formgate/pkg/platform/sentinel"
)

type outcome[R any] struct {
	value R
	err   error
}

type invocation[T, R any] struct {
	ctx    context.Context
	args   T
	result chan outcome[R]
}

// Deferred is the promise-returning form of Debouncer. Each Call blocks until
// its invocation fires and returns that invocation's result. A Call that is
// superseded by a later Call, or dropped by Cancel, returns
// sentinel.ErrCancelled. Every Call settles exactly once.
type Deferred[T, R any] struct {
	fn    func(context.Context, T) (R, error)
	delay time.Duration
	d     *Debouncer[invocation[T, R]]

	mu     sync.Mutex
	closed bool
}

// NewDeferred wraps fn so that calls within delay of each other collapse into
// one invocation with the latest args.
func NewDeferred[T, R any](delay time.Duration, fn func(context.Context, T) (R, error)) *Deferred[T, R] {
	p := &Deferred[T, R]{fn: fn, delay: delay}
	p.d = New(WithDropHandler(func(inv invocation[T, R]) {
		inv.result <- outcome[R]{err: sentinel.ErrCancelled}
	}))
	return p
}

// Call schedules fn(ctx, args) and waits for the outcome. If ctx ends first,
// Call returns ctx.Err(); the invocation stays scheduled and fn observes the
// same ctx.
func (p *Deferred[T, R]) Call(ctx context.Context, args T) (R, error) {
	var zero R

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return zero, sentinel.ErrDisposed
	}
	inv := invocation[T, R]{ctx: ctx, args: args, result: make(chan outcome[R], 1)}
	p.d.Schedule(p.run, inv, p.delay)
	p.mu.Unlock()

	select {
	case out := <-inv.result:
		return out.value, out.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Cancel drops the pending invocation; its caller receives ErrCancelled.
func (p *Deferred[T, R]) Cancel() {
	p.d.Cancel()
}

// Close cancels any pending invocation and rejects future calls with
// sentinel.ErrDisposed.
func (p *Deferred[T, R]) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.d.Cancel()
}

// Pending reports whether an invocation is waiting to fire.
func (p *Deferred[T, R]) Pending() bool {
	return p.d.Pending()
}

func (p *Deferred[T, R]) run(inv invocation[T, R]) {
	value, err := p.fn(inv.ctx, inv.args)
	inv.result <- outcome[R]{value: value, err: err}
}
