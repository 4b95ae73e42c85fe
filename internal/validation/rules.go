// Package validation provides composable field rules, per-form schemas and a
// form state engine that tracks values, errors and touched flags.
//
// A Rule inspects one value and returns an empty string when the value is
// acceptable, or a human-readable message otherwise. Rules never mutate
// shared state, so each can be tested in isolation and reused across schemas.
//
// Apart from Required, every rule accepts an absent value (nil or ""): optional
// fields may be left blank, and a field is made mandatory by listing Required
// first.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Rule validates a single field value. It returns "" when the value passes.
type Rule func(value any) string

// Default messages, in the language of the clinic staff using the forms.
const (
	MsgRequired        = "Este campo é obrigatório"
	MsgPattern         = "Formato inválido"
	MsgEmail           = "Email inválido"
	MsgPositiveNumber  = "Deve ser um número positivo"
	MsgPositiveInteger = "Deve ser um número inteiro positivo"
	MsgPastDate        = "Data não pode ser no futuro"
	MsgInvalidDate     = "Data inválida"
	MsgCustom          = "Valor inválido"
	MsgOneOf           = "Valor não permitido"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dateLayouts are tried in order when a date arrives as text.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func orDefault(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}

// isAbsent reports whether a value counts as "not filled in" for optional
// rules: nil or the empty string. Whitespace-only strings are present.
func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case *string:
		return t == nil || *t == ""
	}
	return false
}

// Required fails on nil and on strings that are empty after trimming.
// Zero numbers and "0" are accepted.
func Required(msg string) Rule {
	msg = orDefault(msg, MsgRequired)
	return func(v any) string {
		switch t := v.(type) {
		case nil:
			return msg
		case string:
			if strings.TrimSpace(t) == "" {
				return msg
			}
		case *string:
			if t == nil || strings.TrimSpace(*t) == "" {
				return msg
			}
		}
		return ""
	}
}

// MinLength fails when a present value is shorter than n characters.
func MinLength(n int, msg string) Rule {
	msg = orDefault(msg, fmt.Sprintf("Mínimo de %d caracteres", n))
	return func(v any) string {
		if isAbsent(v) {
			return ""
		}
		if utf8.RuneCountInString(textOf(v)) < n {
			return msg
		}
		return ""
	}
}

// MaxLength fails when a present value is longer than n characters.
func MaxLength(n int, msg string) Rule {
	msg = orDefault(msg, fmt.Sprintf("Máximo de %d caracteres", n))
	return func(v any) string {
		if isAbsent(v) {
			return ""
		}
		if utf8.RuneCountInString(textOf(v)) > n {
			return msg
		}
		return ""
	}
}

// Pattern fails when a present value does not match re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	msg = orDefault(msg, MsgPattern)
	return func(v any) string {
		if isAbsent(v) {
			return ""
		}
		if !re.MatchString(textOf(v)) {
			return msg
		}
		return ""
	}
}

// Email fails when a present value is not shaped like local@domain.tld.
func Email(msg string) Rule {
	return Pattern(emailPattern, orDefault(msg, MsgEmail))
}

// PositiveNumber fails when a present value is not a number >= 0.
func PositiveNumber(msg string) Rule {
	msg = orDefault(msg, MsgPositiveNumber)
	return func(v any) string {
		if isAbsent(v) {
			return ""
		}
		f, ok := NumberOf(v)
		if !ok || f < 0 {
			return msg
		}
		return ""
	}
}

// PositiveInteger fails when a present value is not a whole number > 0.
// Unlike PositiveNumber, zero is rejected.
func PositiveInteger(msg string) Rule {
	msg = orDefault(msg, MsgPositiveInteger)
	return func(v any) string {
		if isAbsent(v) {
			return ""
		}
		f, ok := NumberOf(v)
		if !ok || f <= 0 || f != math.Trunc(f) {
			return msg
		}
		return ""
	}
}

// PastDate fails when a present date falls after the end of today in local
// time. Text that cannot be read as a date yields MsgInvalidDate.
func PastDate(msg string) Rule {
	return pastDate(time.Now, msg)
}

func pastDate(now func() time.Time, msg string) Rule {
	msg = orDefault(msg, MsgPastDate)
	return func(v any) string {
		if isAbsent(v) {
			return ""
		}
		d, ok := DateOf(v)
		if !ok {
			return MsgInvalidDate
		}
		n := now()
		endOfToday := time.Date(n.Year(), n.Month(), n.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), n.Location())
		if d.After(endOfToday) {
			return msg
		}
		return ""
	}
}

// Custom fails when pred returns false. Unlike the other rules it is also
// evaluated for absent values; pred decides what blank means.
func Custom(pred func(any) bool, msg string) Rule {
	msg = orDefault(msg, MsgCustom)
	return func(v any) string {
		if !pred(v) {
			return msg
		}
		return ""
	}
}

// OneOf fails when a present value is not one of allowed (case-insensitive).
func OneOf(allowed []string, msg string) Rule {
	msg = orDefault(msg, MsgOneOf)
	return func(v any) string {
		if isAbsent(v) {
			return ""
		}
		s := strings.TrimSpace(textOf(v))
		for _, a := range allowed {
			if strings.EqualFold(a, s) {
				return ""
			}
		}
		return msg
	}
}

// textOf renders a value as text for length and pattern checks.
func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// NumberOf reads v as a float64. Strings must parse completely; booleans and
// other types are not numbers.
func NumberOf(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case float32:
		f = float64(t)
	case float64:
		f = t
	case decimal.Decimal:
		f = t.InexactFloat64()
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// DateOf reads v as a point in time. Text dates without a zone are taken as
// local time.
func DateOf(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if d, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return d, true
			}
		}
	}
	return time.Time{}, false
}
