package tabular

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EscapeField quotes s when it contains a quote, the delimiter, CR or LF.
// Embedded quotes are doubled.
func EscapeField(s string, delim rune) string {
	if !strings.ContainsRune(s, '"') && !strings.ContainsRune(s, delim) && !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FormatMoney renders d in pt-BR notation: symbol, space, '.' thousands
// separator and ',' with two decimals, e.g. "R$ 1.234,56".
func FormatMoney(d decimal.Decimal, symbol string) string {
	d = d.Round(2)
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + frac
	if symbol != "" {
		out = symbol + " " + out
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatBool renders a boolean as "Sim" or "Não".
func FormatBool(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// decimalOf extracts a numeric value for money formatting. Strings are not
// numbers here; they export as text.
func decimalOf(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Decimal{}, false
		}
		return *n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// timeOf extracts a date from a time value or an ISO date string.
func timeOf(v any) (time.Time, bool) {
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
		for _, layout := range dateInputLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// plain renders a value without kind-specific formatting.
func plain(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case *string:
		if t == nil {
			return ""
		}
		return strings.TrimSpace(*t)
	case bool:
		return FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case decimal.Decimal:
		return t.String()
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// formatCell renders one value for a text export.
func (e *Exporter) formatCell(h Header, v any) string {
	if v == nil {
		return ""
	}
	switch h.Kind {
	case KindMoney:
		if d, ok := decimalOf(v); ok {
			return FormatMoney(d, e.currencySymbol())
		}
	case KindDate:
		if t, ok := timeOf(v); ok {
			return t.Format(e.dateLayout())
		}
	}
	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return ""
		}
		return t.Format(e.dateLayout())
	}
	return plain(v)
}
