package models

// Kind selects the type-specific parsing and format checks for a field.
type Kind string

const (
	KindText       Kind = "text"
	KindInteger    Kind = "integer"
	KindNumber     Kind = "number" // alias of KindInteger
	KindDecimal    Kind = "decimal"
	KindAge        Kind = "age"
	KindPercentage Kind = "percentage"
	KindCurrency   Kind = "currency"
	KindEmail      Kind = "email"
	KindPhone      Kind = "phone"
	KindDate       Kind = "date"
	KindCustom     Kind = "custom"
)

// IsValid checks if the kind is one of the supported enum values.
func (k Kind) IsValid() bool {
	switch k {
	case KindText, KindInteger, KindNumber, KindDecimal, KindAge, KindPercentage,
		KindCurrency, KindEmail, KindPhone, KindDate, KindCustom:
		return true
	}
	return false
}

// Normalize maps aliases onto their canonical kind and unknown kinds onto
// KindText, so a partially specified rule degrades to length checks only.
func (k Kind) Normalize() Kind {
	switch k {
	case KindNumber:
		return KindInteger
	case "":
		return KindText
	}
	if !k.IsValid() {
		return KindText
	}
	return k
}

// IsNumeric reports whether Min/Max bounds apply to the kind.
func (k Kind) IsNumeric() bool {
	switch k.Normalize() {
	case KindInteger, KindDecimal, KindAge, KindPercentage, KindCurrency:
		return true
	}
	return false
}

// acceptsLength reports whether MinLength/MaxLength apply to the kind.
func (k Kind) acceptsLength() bool {
	switch k.Normalize() {
	case KindText, KindEmail, KindPhone, KindCustom:
		return true
	}
	return false
}

// acceptsPattern reports whether an explicit Pattern is meaningful. Dates have
// a fixed format, so a second matcher could only contradict it.
func (k Kind) acceptsPattern() bool {
	return k.Normalize() != KindDate
}

// DefaultBounds returns the bounds a kind enforces when the rule sets none.
func (k Kind) DefaultBounds() (lo, hi *float64) {
	switch k.Normalize() {
	case KindAge:
		return ptr(1.0), ptr(120.0)
	case KindPercentage:
		return ptr(0.0), ptr(100.0)
	}
	return nil, nil
}

func (k Kind) String() string {
	return string(k)
}

func ptr[T any](v T) *T { return &v }
