package models

import "sort"

// FieldResult is the outcome of validating one value.
type FieldResult struct {
	OK      bool
	Kind    ErrorKind
	Message string
}

// Pass is the successful FieldResult.
func Pass() FieldResult {
	return FieldResult{OK: true}
}

// Fail builds a failed FieldResult.
func Fail(kind ErrorKind, msg string) FieldResult {
	return FieldResult{Kind: kind, Message: msg}
}

// ValidationResult is the outcome of validating a whole record.
// IsValid is true exactly when Errors is empty.
type ValidationResult struct {
	IsValid bool
	Errors  map[string]string
	Kinds   map[string]ErrorKind
}

// NewValidationResult returns a valid, empty result ready for Add.
func NewValidationResult() ValidationResult {
	return ValidationResult{
		IsValid: true,
		Errors:  map[string]string{},
		Kinds:   map[string]ErrorKind{},
	}
}

// Add records a failed field result; passing results are ignored.
func (v *ValidationResult) Add(field string, res FieldResult) {
	if res.OK {
		return
	}
	v.Errors[field] = res.Message
	v.Kinds[field] = res.Kind
	v.IsValid = false
}

// Fields returns the names of failing fields in sorted order.
func (v ValidationResult) Fields() []string {
	names := make([]string, 0, len(v.Errors))
	for name := range v.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
