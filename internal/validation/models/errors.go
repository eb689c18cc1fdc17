package models

// ErrorKind classifies why a field or a submission was rejected.
type ErrorKind string

// Field-level kinds.
const (
	ErrRequired         ErrorKind = "required"
	ErrTypeMismatch     ErrorKind = "type_mismatch"
	ErrOutOfRange       ErrorKind = "out_of_range"
	ErrLengthOutOfRange ErrorKind = "length_out_of_range"
	ErrInvalidFormat    ErrorKind = "invalid_format"
	ErrCustomRejected   ErrorKind = "custom_rejected"
)

func (k ErrorKind) String() string {
	return string(k)
}

// Default messages. A rule's Message replaces all of these except the text
// returned by a custom predicate.
const (
	MsgRequired       = "This field is required"
	MsgInvalidNumber  = "Please enter a valid number"
	MsgInvalidDecimal = "Please enter a valid decimal number"
	MsgInvalidAmount  = "Please enter a valid amount (up to 2 decimal places)"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgInvalidPhone   = "Please enter a valid phone number"
	MsgInvalidDate    = "Please enter a valid date (DD-MM-YYYY)"
	MsgInvalidFormat  = "Invalid format"
)
