package models

import (
	"fmt"
	"maps"
	"regexp"
	"sort"

	dErrors "formgate/pkg/domain-errors"
)

// CustomFunc is a cross-field predicate. It receives the trimmed value (or the
// list for multi-select fields) and the whole record, and returns a non-empty
// message to reject the value.
type CustomFunc func(value any, record Record) string

// RuleSpec describes the constraints for one field. Build it with NewRule so
// that combinations which can never be satisfied are rejected up front.
type RuleSpec struct {
	Kind       Kind
	Required   bool
	AllowEmpty bool

	// Numeric bounds (magnitude for numeric kinds)
	Min *float64
	Max *float64

	// String length bounds, in runes; for list values, number of selections
	MinLength *int
	MaxLength *int

	Pattern *regexp.Regexp
	Custom  CustomFunc
	Message string
}

// Option configures a RuleSpec under construction.
type Option func(*RuleSpec) error

func Required() Option {
	return func(r *RuleSpec) error {
		r.Required = true
		return nil
	}
}

func AllowEmpty() Option {
	return func(r *RuleSpec) error {
		r.AllowEmpty = true
		return nil
	}
}

func Min(v float64) Option {
	return func(r *RuleSpec) error {
		r.Min = &v
		return nil
	}
}

func Max(v float64) Option {
	return func(r *RuleSpec) error {
		r.Max = &v
		return nil
	}
}

// Range sets both numeric bounds, inclusive.
func Range(lo, hi float64) Option {
	return func(r *RuleSpec) error {
		r.Min, r.Max = &lo, &hi
		return nil
	}
}

func MinLength(n int) Option {
	return func(r *RuleSpec) error {
		r.MinLength = &n
		return nil
	}
}

func MaxLength(n int) Option {
	return func(r *RuleSpec) error {
		r.MaxLength = &n
		return nil
	}
}

// Pattern compiles expr and matches it against the trimmed value.
func Pattern(expr string) Option {
	return func(r *RuleSpec) error {
		re, err := regexp.Compile(expr)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid pattern")
		}
		r.Pattern = re
		return nil
	}
}

func Custom(fn CustomFunc) Option {
	return func(r *RuleSpec) error {
		r.Custom = fn
		return nil
	}
}

// Message overrides the generated error text.
func Message(msg string) Option {
	return func(r *RuleSpec) error {
		r.Message = msg
		return nil
	}
}

// NewRule builds a RuleSpec of the given kind and checks its invariants.
// Unlike a literal RuleSpec, it rejects kinds it does not recognise.
func NewRule(kind Kind, opts ...Option) (RuleSpec, error) {
	if kind != "" && !kind.IsValid() {
		return RuleSpec{}, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("unknown kind %q", kind))
	}
	r := RuleSpec{Kind: kind}
	for _, opt := range opts {
		if err := opt(&r); err != nil {
			return RuleSpec{}, err
		}
	}
	if err := r.Validate(); err != nil {
		return RuleSpec{}, err
	}
	return r, nil
}

// MustRule is NewRule for static rule tables; it panics on an invalid rule.
func MustRule(kind Kind, opts ...Option) RuleSpec {
	r, err := NewRule(kind, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks the rule's internal consistency. An unknown kind is not an
// error here: it validates as text.
func (r RuleSpec) Validate() error {
	if r.Required && r.AllowEmpty {
		return dErrors.New(dErrors.CodeInvariantViolation, "required and allowEmpty are mutually exclusive")
	}
	if (r.Min != nil || r.Max != nil) && !r.Kind.IsNumeric() {
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("numeric bounds do not apply to kind %q", r.Kind.Normalize()))
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return dErrors.New(dErrors.CodeInvariantViolation, "min exceeds max")
	}
	if (r.MinLength != nil || r.MaxLength != nil) && !r.Kind.acceptsLength() {
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("length bounds do not apply to kind %q", r.Kind.Normalize()))
	}
	if (r.MinLength != nil && *r.MinLength < 0) || (r.MaxLength != nil && *r.MaxLength < 0) {
		return dErrors.New(dErrors.CodeInvariantViolation, "length bounds cannot be negative")
	}
	if r.MinLength != nil && r.MaxLength != nil && *r.MinLength > *r.MaxLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "minLength exceeds maxLength")
	}
	if r.Pattern != nil && !r.Kind.acceptsPattern() {
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("pattern does not apply to kind %q", r.Kind.Normalize()))
	}
	if r.Kind == KindCustom && r.Custom == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "custom kind requires a custom predicate")
	}
	return nil
}

// Bounds returns the effective numeric bounds: explicit bounds override the
// kind's defaults one side at a time.
func (r RuleSpec) Bounds() (lo, hi *float64) {
	lo, hi = r.Kind.DefaultBounds()
	if r.Min != nil {
		lo = r.Min
	}
	if r.Max != nil {
		hi = r.Max
	}
	return lo, hi
}

// Rules maps field names to their rule. Fields missing from the map are never
// validated.
type Rules map[string]RuleSpec

// Merge returns a new map holding r overlaid with over; entries in over win.
// Neither input is modified.
func (r Rules) Merge(over Rules) Rules {
	out := make(Rules, len(r)+len(over))
	maps.Copy(out, r)
	maps.Copy(out, over)
	return out
}

// Clone returns a shallow copy of r.
func (r Rules) Clone() Rules {
	return r.Merge(nil)
}

// Fields returns the rule names in sorted order.
func (r Rules) Fields() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every rule, reporting the first inconsistent field.
func (r Rules) Validate() error {
	for _, name := range r.Fields() {
		if err := r[name].Validate(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("rule %q", name))
		}
	}
	return nil
}

// ConditionalRuleSet derives extra rules from the current record. Its output
// is merged over the base rules before each validation pass.
type ConditionalRuleSet func(record Record) Rules
