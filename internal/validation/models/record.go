package models

import (
	"fmt"
	"maps"
	"reflect"
	"strconv"
	"strings"

	fgstrings "formgate/pkg/platform/strings"
)

// Record is one form's current values keyed by field name. Values are
// scalars (string, numbers, bool) or lists ([]string, []any) for multi-select
// fields.
type Record map[string]any

// Clone returns a copy of r. List values are copied so the clone can be
// mutated independently.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		switch vv := v.(type) {
		case []string:
			out[k] = append([]string(nil), vv...)
		case []any:
			out[k] = append([]any(nil), vv...)
		default:
			out[k] = v
		}
	}
	return out
}

// HasAnyData reports whether at least one value is non-empty.
func (r Record) HasAnyData() bool {
	for _, v := range r {
		if !IsEmptyValue(v) {
			return true
		}
	}
	return false
}

// Equal reports whether both records hold the same values, treating a
// missing key and an empty value as equal.
func (r Record) Equal(other Record) bool {
	keys := make(map[string]struct{}, len(r)+len(other))
	for k := range r {
		keys[k] = struct{}{}
	}
	for k := range other {
		keys[k] = struct{}{}
	}
	for k := range keys {
		a, b := r[k], other[k]
		if IsEmptyValue(a) && IsEmptyValue(b) {
			continue
		}
		if !reflect.DeepEqual(a, b) {
			return false
		}
	}
	return true
}

// Sanitized returns a copy with every string trimmed and string lists trimmed
// and de-duplicated. Callers forward the sanitized record to their API client
// once a submission is authorized.
func (r Record) Sanitized() Record {
	out := make(Record, len(r))
	maps.Copy(out, r)
	for k, v := range out {
		switch vv := v.(type) {
		case string:
			out[k] = strings.TrimSpace(vv)
		case []string:
			out[k] = fgstrings.DedupeAndTrim(append([]string(nil), vv...))
		case []any:
			items := make([]any, 0, len(vv))
			for _, item := range vv {
				if s, ok := item.(string); ok {
					item = strings.TrimSpace(s)
				}
				items = append(items, item)
			}
			out[k] = items
		}
	}
	return out
}

// IsEmptyValue reports whether v counts as "no answer": nil, a blank string,
// or a list with no non-blank entries.
func IsEmptyValue(v any) bool {
	switch vv := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(vv) == ""
	case *string:
		return vv == nil || strings.TrimSpace(*vv) == ""
	case []string:
		return len(fgstrings.DedupeAndTrim(vv)) == 0
	case []any:
		for _, item := range vv {
			if !IsEmptyValue(item) {
				return false
			}
		}
		return true
	}
	return false
}

// IsList reports whether v is a multi-select value.
func IsList(v any) bool {
	switch v.(type) {
	case []string, []any:
		return true
	}
	return false
}

// ListLen returns the number of non-blank entries of a list value.
func ListLen(v any) int {
	switch vv := v.(type) {
	case []string:
		return len(fgstrings.DedupeAndTrim(vv))
	case []any:
		n := 0
		for _, item := range vv {
			if !IsEmptyValue(item) {
				n++
			}
		}
		return n
	}
	return 0
}

// StringValue renders a scalar value as the trimmed text a user would have
// typed. Numbers use their shortest decimal form.
func StringValue(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(vv)
	case *string:
		if vv == nil {
			return ""
		}
		return strings.TrimSpace(*vv)
	case int:
		return strconv.Itoa(vv)
	case int64:
		return strconv.FormatInt(vv, 10)
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(vv), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(vv)
	case fmt.Stringer:
		return strings.TrimSpace(vv.String())
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
