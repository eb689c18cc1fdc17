package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "formgate/pkg/domain-errors"
)

func TestNewRule_Invariants(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		opts []Option
	}{
		{"required with allowEmpty", KindText, []Option{Required(), AllowEmpty()}},
		{"pattern on date", KindDate, []Option{Pattern(`^\d+$`)}},
		{"numeric bounds on text", KindText, []Option{Min(1)}},
		{"length bounds on integer", KindInteger, []Option{MaxLength(3)}},
		{"min above max", KindDecimal, []Option{Range(10, 1)}},
		{"minLength above maxLength", KindText, []Option{MinLength(5), MaxLength(2)}},
		{"negative length", KindText, []Option{MinLength(-1)}},
		{"custom kind without predicate", KindCustom, nil},
		{"unknown kind", Kind("colour"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRule(tt.kind, tt.opts...)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}
}

func TestNewRule_InvalidPattern(t *testing.T) {
	_, err := NewRule(KindText, Pattern(`([`))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestNewRule_Valid(t *testing.T) {
	r, err := NewRule(KindAge, Required(), Max(99), Message("Age must be 1-99"))
	require.NoError(t, err)
	assert.Equal(t, KindAge, r.Kind)
	assert.True(t, r.Required)

	lo, hi := r.Bounds()
	require.NotNil(t, lo)
	require.NotNil(t, hi)
	assert.Equal(t, 1.0, *lo, "default lower bound kept")
	assert.Equal(t, 99.0, *hi, "explicit upper bound wins")
}

func TestMustRule_Panics(t *testing.T) {
	assert.Panics(t, func() { MustRule(KindDate, Pattern(`.*`)) })
	assert.NotPanics(t, func() { MustRule(KindEmail, Required()) })
}

func TestKind_Normalize(t *testing.T) {
	assert.Equal(t, KindInteger, KindNumber.Normalize())
	assert.Equal(t, KindText, Kind("").Normalize())
	assert.Equal(t, KindText, Kind("unknown").Normalize())
	assert.Equal(t, KindPhone, KindPhone.Normalize())
	assert.True(t, KindCurrency.IsNumeric())
	assert.False(t, KindDate.IsNumeric())
}

func TestRules_Merge(t *testing.T) {
	base := Rules{
		"religionSpecify": {Kind: KindText},
		"age":             MustRule(KindAge, Required()),
	}
	over := Rules{"religionSpecify": MustRule(KindText, Required())}

	merged := base.Merge(over)

	assert.True(t, merged["religionSpecify"].Required, "conditional entry wins")
	assert.True(t, merged["age"].Required)
	assert.False(t, base["religionSpecify"].Required, "base left untouched")
	assert.Equal(t, []string{"age", "religionSpecify"}, merged.Fields())
}

func TestRules_Validate(t *testing.T) {
	rules := Rules{
		"ok":  {Kind: KindText},
		"bad": {Kind: KindText, Required: true, AllowEmpty: true},
	}
	err := rules.Validate()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), `rule "bad"`)
}

func TestRules_ValidateAcceptsUnknownKind(t *testing.T) {
	maxLen := 3
	rules := Rules{"note": {Kind: Kind("freeform"), MaxLength: &maxLen}}
	require.NoError(t, rules.Validate())

	lo := 1.0
	bad := Rules{"note": {Kind: Kind("freeform"), Min: &lo}}
	assert.True(t, dErrors.HasCode(bad.Validate(), dErrors.CodeInvariantViolation), "numeric bounds rejected on the text fallback")
}

func TestKind_DefaultBounds(t *testing.T) {
	lo, hi := KindAge.DefaultBounds()
	require.NotNil(t, lo)
	require.NotNil(t, hi)
	assert.Equal(t, 1.0, *lo)
	assert.Equal(t, 120.0, *hi)

	lo, hi = KindPercentage.DefaultBounds()
	require.NotNil(t, lo)
	require.NotNil(t, hi)
	assert.Equal(t, 0.0, *lo)
	assert.Equal(t, 100.0, *hi)

	lo, hi = KindDecimal.DefaultBounds()
	assert.Nil(t, lo)
	assert.Nil(t, hi)
}
