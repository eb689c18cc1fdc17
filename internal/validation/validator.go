// Package validation evaluates whole records against a rule map, merging in
// conditional rules computed from the record itself.
package validation

import (
	"formgate/internal/validation/field"
	"formgate/internal/validation/models"
)

// Validator holds a form's base rules and optional conditional rule set.
// It is immutable after construction and safe for concurrent use.
type Validator struct {
	base        models.Rules
	conditional models.ConditionalRuleSet
}

type Option func(*Validator)

// WithConditional adds a rule set computed from the current record. Its rules
// should be built with models.MustRule; unknown kinds validate as text.
func WithConditional(fn models.ConditionalRuleSet) Option {
	return func(v *Validator) {
		v.conditional = fn
	}
}

// WithAllowEmptyDefaults marks base fields as allowEmpty. Fields whose base
// rule is required are left alone, so a default can never weaken a mandatory
// field. Conditional rules are unaffected.
func WithAllowEmptyDefaults(defaults map[string]bool) Option {
	return func(v *Validator) {
		for name, allow := range defaults {
			r, ok := v.base[name]
			if !ok || !allow || r.Required {
				continue
			}
			r.AllowEmpty = true
			v.base[name] = r
		}
	}
}

// New builds a Validator. The base rules are copied and checked for
// consistency; an inconsistent rule is a programmer error.
func New(base models.Rules, opts ...Option) (*Validator, error) {
	v := &Validator{base: base.Clone()}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.base.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Rules returns a copy of the base rules.
func (v *Validator) Rules() models.Rules {
	return v.base.Clone()
}

// EffectiveRules returns the base rules overlaid with the conditional rules
// derived from record.
func (v *Validator) EffectiveRules(record models.Record) models.Rules {
	return effectiveRules(record, v.base, v.conditional)
}

// Validate checks every field named by the effective rules. Fields present in
// record but absent from the rules are ignored.
func (v *Validator) Validate(record models.Record) models.ValidationResult {
	return validate(record, v.EffectiveRules(record))
}

// ValidateField checks a single field against its effective rule, for
// validation while the user types. A field with no rule always passes.
func (v *Validator) ValidateField(record models.Record, name string) models.FieldResult {
	r, ok := v.EffectiveRules(record)[name]
	if !ok {
		return models.Pass()
	}
	return field.Validate(record[name], r, record)
}

// Validate is the stateless form of Validator.Validate. conditional may be nil.
func Validate(record models.Record, base models.Rules, conditional models.ConditionalRuleSet) models.ValidationResult {
	return validate(record, effectiveRules(record, base, conditional))
}

// effectiveRules overlays the conditional rules on base. Conditional rules are
// computed per record and never pass through Rules.Validate, so an entry that
// sets both Required and AllowEmpty is resolved here: Required wins.
func effectiveRules(record models.Record, base models.Rules, conditional models.ConditionalRuleSet) models.Rules {
	out := base.Clone()
	if conditional == nil {
		return out
	}
	for name, r := range conditional(record) {
		if r.Required {
			r.AllowEmpty = false
		}
		out[name] = r
	}
	return out
}

func validate(record models.Record, rules models.Rules) models.ValidationResult {
	result := models.NewValidationResult()
	for name, r := range rules {
		result.Add(name, field.Validate(record[name], r, record))
	}
	return result
}
