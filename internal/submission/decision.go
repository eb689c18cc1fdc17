package submission

import (
	"time"

	"formgate/internal/interaction"
	"formgate/internal/validation"
	"formgate/internal/validation/models"
)

// Status is the top-level outcome of a submission attempt.
type Status string

const (
	StatusReady    Status = "ready"
	StatusRejected Status = "rejected"
)

// Reason explains why a submission was rejected. Ready decisions carry no reason.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNoData           Reason = "no_data"
	ReasonStaleInteraction Reason = "stale_interaction"
	ReasonValidationFailed Reason = "validation_failed"
)

const (
	MsgNoData           = "Please enter at least one value before saving"
	MsgStaleInteraction = "This form has not been edited recently. Please review it before saving"
	MsgValidationFailed = "Please correct the highlighted fields"
)

// DefaultTimeout is the freshness window used when Input.Timeout is zero.
const DefaultTimeout = interaction.DefaultTimeout

// Decision is the discriminated result of the gate. Errors and Kinds are
// populated only for ReasonValidationFailed and then hold every failing field.
type Decision struct {
	Status  Status
	Reason  Reason
	Message string
	Errors  map[string]string
	Kinds   map[string]models.ErrorKind
}

func (d Decision) IsReady() bool {
	return d.Status == StatusReady
}

// Freshness reports whether a form was touched recently enough to save.
// interaction.Tracker satisfies it.
type Freshness interface {
	IsFresh(now time.Time, timeout time.Duration) bool
}

// Input carries everything the gate reads. Validator may be nil, in which
// case the record is considered valid.
type Input struct {
	Record      models.Record
	Validator   *validation.Validator
	Interaction Freshness
	Now         time.Time
	Timeout     time.Duration
}

// Evaluate applies the submission rule chain.
// This is pure domain logic - no I/O, no side effects.
// Rule priority (fail-fast):
//  1. Non-emptiness - a blank form never reaches field validation
//  2. Freshness - untouched or abandoned sessions cannot auto-save
//  3. Validity - every field error is surfaced at once
func Evaluate(in Input) Decision {
	// Rule 1: Non-emptiness
	if !in.Record.HasAnyData() {
		return rejected(ReasonNoData, MsgNoData)
	}

	// Rule 2: Freshness
	timeout := in.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if in.Interaction == nil || !in.Interaction.IsFresh(in.Now, timeout) {
		return rejected(ReasonStaleInteraction, MsgStaleInteraction)
	}

	// Rule 3: Validity
	if in.Validator != nil {
		if res := in.Validator.Validate(in.Record); !res.IsValid {
			d := rejected(ReasonValidationFailed, MsgValidationFailed)
			d.Errors = res.Errors
			d.Kinds = res.Kinds
			return d
		}
	}

	return Decision{Status: StatusReady}
}

// FailedFields returns the failing field names in sorted order.
func (d Decision) FailedFields() []string {
	return models.ValidationResult{Errors: d.Errors}.Fields()
}

func rejected(reason Reason, msg string) Decision {
	return Decision{
		Status:  StatusRejected,
		Reason:  reason,
		Message: msg,
	}
}
