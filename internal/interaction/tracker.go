// Package interaction tracks whether, and how recently, a user has touched a
// form. A save attempt on a form nobody has touched recently is stale and must
// be distinguishable from a genuinely completed one.
package interaction

import (
	"context"
	"sort"
	"sync"
	"time"

	"formgate/pkg/requestcontext"
)

// DefaultTimeout is the freshness window used when a form sets none.
const DefaultTimeout = 5 * time.Minute

// State is the tracker's observable state.
type State string

const (
	StateUntouched State = "untouched"
	StateTouched   State = "touched"
)

// Snapshot is a point-in-time copy of a tracker's state.
type Snapshot struct {
	Touched       bool
	LastTouchAt   time.Time // zero while untouched
	TouchedFields []string  // sorted
}

// Tracker is the interaction state machine for one form instance:
//
//	Untouched --touch--> Touched(now)
//	Touched   --touch--> Touched(now)
//	any       --reset--> Untouched
//
// Freshness is evaluated lazily by IsFresh; nothing expires in the background.
// A Tracker must not be shared between forms. The mutex only protects against
// debounce callbacks reading state from timer goroutines.
type Tracker struct {
	mu          sync.RWMutex
	lastTouchAt time.Time
	touched     bool
	fields      map[string]struct{}
}

// New returns an Untouched tracker.
func New() *Tracker {
	return &Tracker{fields: make(map[string]struct{})}
}

// Touch records a mutation of field at the action-scoped time from ctx.
func (t *Tracker) Touch(ctx context.Context, field string) {
	t.TouchAt(field, requestcontext.Now(ctx))
}

// TouchAt records a mutation of field at the given time. Adding a field that
// is already recorded is a no-op for the field set.
func (t *Tracker) TouchAt(field string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touched = true
	t.lastTouchAt = at
	if field != "" {
		t.fields[field] = struct{}{}
	}
}

// Reset returns the tracker to Untouched and forgets touched fields.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touched = false
	t.lastTouchAt = time.Time{}
	t.fields = make(map[string]struct{})
}

// IsFresh reports whether the form was touched within timeout of now.
// Untouched is never fresh.
func (t *Tracker) IsFresh(now time.Time, timeout time.Duration) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.touched {
		return false
	}
	return now.Sub(t.lastTouchAt) <= timeout
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.touched {
		return StateTouched
	}
	return StateUntouched
}

// LastTouchAt returns the time of the most recent touch and whether there
// has been one.
func (t *Tracker) LastTouchAt() (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastTouchAt, t.touched
}

// WasTouched reports whether field has been touched since the last reset.
func (t *Tracker) WasTouched(field string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.fields[field]
	return ok
}

// TouchedFields returns the touched field names in sorted order.
func (t *Tracker) TouchedFields() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortedFields()
}

// Snapshot copies the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Touched:       t.touched,
		LastTouchAt:   t.lastTouchAt,
		TouchedFields: t.sortedFields(),
	}
}

// Must be called while holding t.mu.
func (t *Tracker) sortedFields() []string {
	names := make([]string, 0, len(t.fields))
	for name := range t.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
