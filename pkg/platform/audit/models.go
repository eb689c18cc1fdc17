package audit

import (
	"context"
	"time"

	id "formgate/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and sinks.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance for the
	// trial record (a save authorized or refused). Long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging form sessions.
	// These can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the engine to capture submission decisions and form
// lifecycle changes. It is transport-agnostic so sinks can fan out.
type Event struct {
	ID            string
	Category      EventCategory
	Timestamp     time.Time
	FormID        id.FormID
	ParticipantID id.ParticipantID
	Action        string
	Decision      string
	Reason        string
	// Fields lists the failing fields for rejected submissions, sorted.
	Fields    []string
	RequestID string
}

type AuditEvent string

const (
	EventSubmissionAuthorized AuditEvent = "submission_authorized"
	EventSubmissionRejected   AuditEvent = "submission_rejected"
	EventFormReset            AuditEvent = "form_reset"
	EventFormDisposed         AuditEvent = "form_disposed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventSubmissionAuthorized: CategoryCompliance,
	EventSubmissionRejected:   CategoryCompliance,
	EventFormReset:            CategoryOperations,
	EventFormDisposed:         CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

func (e AuditEvent) String() string {
	return string(e)
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByForm(ctx context.Context, formID id.FormID) ([]Event, error)
}
