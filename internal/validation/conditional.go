package validation

import (
	"slices"

	"formgate/internal/validation/models"
)

// When returns a conditional rule set that applies rules while the named
// field equals value (compared on its trimmed text form).
func When(name string, value string, rules models.Rules) models.ConditionalRuleSet {
	return WhenAny(name, []string{value}, rules)
}

// WhenAny applies rules while the named field equals any of values. For
// multi-select fields the rules apply if any selection matches.
func WhenAny(name string, values []string, rules models.Rules) models.ConditionalRuleSet {
	return func(record models.Record) models.Rules {
		if matches(record[name], values) {
			return rules
		}
		return nil
	}
}

// Compose merges several conditional rule sets; later sets win on conflicts.
func Compose(sets ...models.ConditionalRuleSet) models.ConditionalRuleSet {
	return func(record models.Record) models.Rules {
		out := models.Rules{}
		for _, set := range sets {
			if set == nil {
				continue
			}
			out = out.Merge(set(record))
		}
		return out
	}
}

func matches(v any, values []string) bool {
	switch vv := v.(type) {
	case []string:
		for _, item := range vv {
			if matches(item, values) {
				return true
			}
		}
		return false
	case []any:
		for _, item := range vv {
			if matches(item, values) {
				return true
			}
		}
		return false
	}
	if models.IsEmptyValue(v) {
		return false
	}
	return slices.Contains(values, models.StringValue(v))
}
