// Package strings provides the string normalization used when reading and
// sanitizing form input.
package strings

import (
	"strings"
	"unicode/utf8"
)

// DedupeAndTrim trims each element and drops blanks and repeats, keeping the
// first occurrence. Multi-select answers are normalized with it.
//
// Example:
//
//	DedupeAndTrim([]string{"  Hindi ", "Tamil", "Hindi", "", "  "})
//	// Returns: []string{"Hindi", "Tamil"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// StripChars removes every rune in cutset from s.
//
// Example:
//
//	StripChars("+91 (22) 555-0100", " -()")
//	// Returns: "+91225550100"
func StripChars(s, cutset string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(cutset, r) {
			return -1
		}
		return r
	}, s)
}

// Len returns the number of characters (runes) in s, which is what users
// count when a field says "at most 50 characters".
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// CollapseSpace trims s and replaces each internal run of whitespace with a
// single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
