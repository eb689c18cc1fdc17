package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{name: "trims whitespace", input: []string{"  Hindi  ", "Tamil  "}, expected: []string{"Hindi", "Tamil"}},
		{name: "removes duplicates preserving order", input: []string{"b", "a", "b", "c", "a"}, expected: []string{"b", "a", "c"}},
		{name: "removes blanks", input: []string{"a", "", "  ", "b"}, expected: []string{"a", "b"}},
		{name: "only blanks", input: []string{" ", ""}, expected: []string{}},
		{name: "preserves case", input: []string{"Yes", "yes"}, expected: []string{"Yes", "yes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrim_DoesNotModifyInput(t *testing.T) {
	input := []string{"  a ", "a"}
	_ = DedupeAndTrim(input)
	assert.Equal(t, []string{"  a ", "a"}, input)
}

func TestStripChars(t *testing.T) {
	assert.Equal(t, "+91225550100", StripChars("+91 (22) 555-0100", " -()"))
	assert.Equal(t, "abc", StripChars("abc", ""))
	assert.Equal(t, "", StripChars("---", "-"))
}

func TestLen(t *testing.T) {
	assert.Equal(t, 5, Len("hello"))
	assert.Equal(t, 5, Len("héllo"))
	assert.Equal(t, 0, Len(""))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "new delhi", CollapseSpace("  new \t delhi\n"))
	assert.Equal(t, "", CollapseSpace("   "))
}
