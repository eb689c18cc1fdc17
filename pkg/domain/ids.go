// Package domain holds identifier primitives shared across the engine.
package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "formgate/pkg/domain-errors"
)

// FormID identifies one mounted form instance. Interaction state and records
// are owned by exactly one FormID.
type FormID uuid.UUID

// ParticipantID identifies the trial participant whose data a form captures.
type ParticipantID uuid.UUID

// NewFormID returns a fresh random form identifier.
func NewFormID() FormID {
	return FormID(uuid.New())
}

func (id FormID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the identifier is the zero UUID.
func (id FormID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id ParticipantID) String() string { return uuid.UUID(id).String() }

func (id ParticipantID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// ParseFormID parses s into a FormID.
func ParseFormID(s string) (FormID, error) {
	u, err := parseUUID(s, "form ID")
	if err != nil {
		return FormID{}, err
	}
	return FormID(u), nil
}

// ParseParticipantID parses s into a ParticipantID.
func ParseParticipantID(s string) (ParticipantID, error) {
	u, err := parseUUID(s, "participant ID")
	if err != nil {
		return ParticipantID{}, err
	}
	return ParticipantID(u), nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if !utf8.ValidString(s) {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is not valid UTF-8")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
