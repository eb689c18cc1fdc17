package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("message includes cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(cause, CodeInternal, "publish audit event")
		require.Error(t, err)
		assert.Equal(t, "publish audit event: boom", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}

func TestHasCode(t *testing.T) {
	inner := New(CodeInvariantViolation, "min exceeds max")
	outer := Wrap(inner, CodeValidation, "rule \"age\"")

	assert.True(t, HasCode(outer, CodeValidation))
	assert.True(t, HasCode(outer, CodeInvariantViolation))
	assert.False(t, HasCode(outer, CodeInternal))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.True(t, HasCode(fmt.Errorf("context: %w", inner), CodeInvariantViolation))
}
