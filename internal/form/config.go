package form

import (
	"time"

	"formgate/internal/submission"
	dErrors "formgate/pkg/domain-errors"
)

// Config holds per-form policy values.
type Config struct {
	// InteractionTimeout is how recently the form must have been touched for
	// a submission to be accepted.
	InteractionTimeout time.Duration
	// AllowEmptyDefaults marks optional fields whose blank value is always
	// accepted, skipping even custom predicates.
	AllowEmptyDefaults map[string]bool
	// ValidationDelay is the debounce window for validate-as-you-type.
	ValidationDelay time.Duration
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		InteractionTimeout: submission.DefaultTimeout,
		ValidationDelay:    300 * time.Millisecond,
	}
}

// Validate rejects configurations the form cannot run with.
func (c Config) Validate() error {
	if c.InteractionTimeout <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "interaction timeout must be positive")
	}
	if c.ValidationDelay < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "validation delay must not be negative")
	}
	return nil
}
