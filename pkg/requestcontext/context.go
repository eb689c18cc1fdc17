// Package requestcontext provides context accessors for values scoped to one
// user action (a keystroke batch, a save attempt).
//
// Usage in the engine (read values):
//
//	now := requestcontext.Now(ctx)
//	formID := requestcontext.FormID(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "formgate/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	formIDKey        struct{}
	participantIDKey struct{}
	requestIDKey     struct{}
	requestTimeKey   struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyFormID        = formIDKey{}
	ContextKeyParticipantID = participantIDKey{}
	ContextKeyRequestID     = requestIDKey{}
	ContextKeyRequestTime   = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Form context
// -----------------------------------------------------------------------------

// FormID retrieves the form instance ID from the context.
// Returns the zero value (nil UUID) if not set.
func FormID(ctx context.Context) id.FormID {
	if formID, ok := ctx.Value(ContextKeyFormID).(id.FormID); ok {
		return formID
	}
	return id.FormID{}
}

// WithFormID injects a form instance ID into the context.
func WithFormID(ctx context.Context, formID id.FormID) context.Context {
	return context.WithValue(ctx, ContextKeyFormID, formID)
}

// ParticipantID retrieves the participant whose record is being edited.
func ParticipantID(ctx context.Context) id.ParticipantID {
	if participantID, ok := ctx.Value(ContextKeyParticipantID).(id.ParticipantID); ok {
		return participantID
	}
	return id.ParticipantID{}
}

// WithParticipantID injects a participant ID into the context.
func WithParticipantID(ctx context.Context, participantID id.ParticipantID) context.Context {
	return context.WithValue(ctx, ContextKeyParticipantID, participantID)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the correlation ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a correlation ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the action-scoped time from context.
// Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
// Useful for:
//   - Tests that need deterministic interaction timestamps
//   - Replaying a captured session against the gate
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
