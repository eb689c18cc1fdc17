// Package field validates a single value against a single rule.
//
// Validate is pure: invalid input is reported through the returned
// FieldResult, never through a panic or error. Checks run in a fixed order:
//  1. Emptiness (allowEmpty short-circuits, required fails)
//  2. Kind-specific parsing and bounds
//  3. Explicit pattern
//  4. Custom predicate
package field

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"formgate/internal/validation/models"
	fgstrings "formgate/pkg/platform/strings"
)

var (
	integerPattern  = regexp.MustCompile(`^\d+$`)
	decimalPattern  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	currencyPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)*\.[A-Za-z]{2,}$`)
	phonePattern    = regexp.MustCompile(`^\+?\d{7,15}$`)
	datePattern     = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
)

// phoneSeparators are stripped before a phone number is matched.
const phoneSeparators = " -().\t"

// Validate checks value against rule. record is passed through to the rule's
// custom predicate for cross-field checks and may be nil.
func Validate(value any, rule models.RuleSpec, record models.Record) models.FieldResult {
	if models.IsEmptyValue(value) {
		switch {
		case rule.AllowEmpty:
			return models.Pass()
		case rule.Required:
			return fail(rule, models.ErrRequired, models.MsgRequired)
		}
		if models.IsList(value) {
			return runCustom(value, rule, record)
		}
		return runCustom(models.StringValue(value), rule, record)
	}

	if models.IsList(value) {
		if res := checkListLength(models.ListLen(value), rule); !res.OK {
			return res
		}
		return runCustom(value, rule, record)
	}

	text := models.StringValue(value)

	if res := checkKind(text, rule); !res.OK {
		return res
	}

	if rule.Pattern != nil && !rule.Pattern.MatchString(text) {
		return fail(rule, models.ErrInvalidFormat, models.MsgInvalidFormat)
	}

	return runCustom(text, rule, record)
}

// checkKind dispatches on the normalized kind. Every Kind constant has a case;
// unknown kinds were normalized to text.
func checkKind(text string, rule models.RuleSpec) models.FieldResult {
	switch rule.Kind.Normalize() {
	case models.KindInteger, models.KindAge:
		return checkNumber(text, rule, integerPattern, models.MsgInvalidNumber)
	case models.KindDecimal, models.KindPercentage:
		return checkNumber(text, rule, decimalPattern, models.MsgInvalidDecimal)
	case models.KindCurrency:
		return checkNumber(text, rule, currencyPattern, models.MsgInvalidAmount)
	case models.KindEmail:
		if !emailPattern.MatchString(text) {
			return fail(rule, models.ErrTypeMismatch, models.MsgInvalidEmail)
		}
		return checkTextLength(text, rule)
	case models.KindPhone:
		if !phonePattern.MatchString(fgstrings.StripChars(text, phoneSeparators)) {
			return fail(rule, models.ErrTypeMismatch, models.MsgInvalidPhone)
		}
		return checkTextLength(text, rule)
	case models.KindDate:
		if _, ok := ParseDate(text); !ok {
			return fail(rule, models.ErrTypeMismatch, models.MsgInvalidDate)
		}
		return models.Pass()
	case models.KindText, models.KindCustom:
		return checkTextLength(text, rule)
	}
	return checkTextLength(text, rule)
}

func checkNumber(text string, rule models.RuleSpec, shape *regexp.Regexp, msg string) models.FieldResult {
	if !shape.MatchString(text) {
		return fail(rule, models.ErrTypeMismatch, msg)
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fail(rule, models.ErrTypeMismatch, msg)
	}

	lo, hi := rule.Bounds()
	if lo != nil && n < *lo {
		return fail(rule, models.ErrOutOfRange, fmt.Sprintf("Value must be at least %s", formatBound(*lo)))
	}
	if hi != nil && n > *hi {
		return fail(rule, models.ErrOutOfRange, fmt.Sprintf("Value must be at most %s", formatBound(*hi)))
	}
	return models.Pass()
}

func checkTextLength(text string, rule models.RuleSpec) models.FieldResult {
	n := fgstrings.Len(text)
	if rule.MinLength != nil && n < *rule.MinLength {
		return fail(rule, models.ErrLengthOutOfRange, fmt.Sprintf("Must be at least %d characters", *rule.MinLength))
	}
	if rule.MaxLength != nil && n > *rule.MaxLength {
		return fail(rule, models.ErrLengthOutOfRange, fmt.Sprintf("Must be at most %d characters", *rule.MaxLength))
	}
	return models.Pass()
}

func checkListLength(n int, rule models.RuleSpec) models.FieldResult {
	if rule.MinLength != nil && n < *rule.MinLength {
		return fail(rule, models.ErrLengthOutOfRange, fmt.Sprintf("Select at least %d options", *rule.MinLength))
	}
	if rule.MaxLength != nil && n > *rule.MaxLength {
		return fail(rule, models.ErrLengthOutOfRange, fmt.Sprintf("Select at most %d options", *rule.MaxLength))
	}
	return models.Pass()
}

func runCustom(value any, rule models.RuleSpec, record models.Record) models.FieldResult {
	if rule.Custom == nil {
		return models.Pass()
	}
	if msg := rule.Custom(value, record); msg != "" {
		return models.Fail(models.ErrCustomRejected, msg)
	}
	return models.Pass()
}

// fail applies the rule's message override.
func fail(rule models.RuleSpec, kind models.ErrorKind, msg string) models.FieldResult {
	if rule.Message != "" {
		msg = rule.Message
	}
	return models.Fail(kind, msg)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseDate parses a DD-MM-YYYY string and rejects dates that do not exist
// on the calendar, such as 31-02-2024.
func ParseDate(text string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
