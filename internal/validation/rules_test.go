package validation

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRequired(t *testing.T) {
	rule := Required("")
	empty := ""

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"empty string", "", MsgRequired},
		{"whitespace only", "   ", MsgRequired},
		{"nil", nil, MsgRequired},
		{"nil string pointer", (*string)(nil), MsgRequired},
		{"empty string pointer", &empty, MsgRequired},
		{"zero string", "0", ""},
		{"zero int", 0, ""},
		{"zero float", 0.0, ""},
		{"false", false, ""},
		{"text", "Caixa", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule(tt.value); got != tt.want {
				t.Errorf("Required(%#v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRequired_CustomMessage(t *testing.T) {
	if got := Required("Tipo é obrigatório")(""); got != "Tipo é obrigatório" {
		t.Errorf("Required custom message = %q", got)
	}
}

func TestLengthRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value any
		want  string
	}{
		{"min passes on empty", MinLength(2, ""), "", ""},
		{"min passes on nil", MinLength(2, ""), nil, ""},
		{"min fails short", MinLength(2, ""), "a", "Mínimo de 2 caracteres"},
		{"min counts runes", MinLength(2, ""), "çã", ""},
		{"min at bound", MinLength(2, ""), "ab", ""},
		{"max passes on empty", MaxLength(3, ""), "", ""},
		{"max at bound", MaxLength(3, ""), "abc", ""},
		{"max fails long", MaxLength(3, ""), "abcd", "Máximo de 3 caracteres"},
		{"max counts runes", MaxLength(3, ""), "ção", ""},
		{"max on number", MaxLength(3, ""), 12345, "Máximo de 3 caracteres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule(tt.value); got != tt.want {
				t.Errorf("rule(%#v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPatternAndEmail(t *testing.T) {
	code := Pattern(regexp.MustCompile(`^[A-Z]{3}-\d+$`), "")
	email := Email("")

	tests := []struct {
		name  string
		rule  Rule
		value any
		want  string
	}{
		{"pattern empty", code, "", ""},
		{"pattern match", code, "BEM-12", ""},
		{"pattern mismatch", code, "bem-12", MsgPattern},
		{"email empty", email, "", ""},
		{"email valid", email, "ana@clinica.com.br", ""},
		{"email no tld", email, "ana@clinica", MsgEmail},
		{"email no at", email, "ana.clinica.com", MsgEmail},
		{"email with space", email, "ana maria@clinica.com", MsgEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule(tt.value); got != tt.want {
				t.Errorf("rule(%#v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPositiveNumber(t *testing.T) {
	rule := PositiveNumber("")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"empty", "", ""},
		{"nil", nil, ""},
		{"zero", "0", ""},
		{"decimal text", "150.75", ""},
		{"int", 3, ""},
		{"float", 2.5, ""},
		{"decimal", decimal.RequireFromString("10.10"), ""},
		{"json number", json.Number("42"), ""},
		{"negative text", "-1", MsgPositiveNumber},
		{"negative int", -1, MsgPositiveNumber},
		{"not a number", "abc", MsgPositiveNumber},
		{"trailing garbage", "12abc", MsgPositiveNumber},
		{"bool", true, MsgPositiveNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule(tt.value); got != tt.want {
				t.Errorf("PositiveNumber(%#v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPositiveInteger(t *testing.T) {
	rule := PositiveInteger("")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"empty", "", ""},
		{"one", "1", ""},
		{"json float integral", 5.0, ""},
		{"zero text", "0", MsgPositiveInteger},
		{"zero int", 0, MsgPositiveInteger},
		{"negative", "-3", MsgPositiveInteger},
		{"fraction", "1.5", MsgPositiveInteger},
		{"not a number", "dez", MsgPositiveInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule(tt.value); got != tt.want {
				t.Errorf("PositiveInteger(%#v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPastDate(t *testing.T) {
	rule := PastDate("")
	now := time.Now()
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"empty", "", ""},
		{"nil", nil, ""},
		{"yesterday", now.AddDate(0, 0, -1), ""},
		{"today", now, ""},
		{"today as ISO text", now.Format("2006-01-02"), ""},
		{"tomorrow", tomorrow, MsgPastDate},
		{"tomorrow as ISO text", tomorrow.Format("2006-01-02"), MsgPastDate},
		{"tomorrow as dd/mm/yyyy", tomorrow.Format("02/01/2006"), MsgPastDate},
		{"garbage", "ontem", MsgInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule(tt.value); got != tt.want {
				t.Errorf("PastDate(%#v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPastDate_EndOfTodayBoundary(t *testing.T) {
	fixed := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	rule := pastDate(func() time.Time { return fixed }, "")

	lastInstant := time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.Local)
	if got := rule(lastInstant); got != "" {
		t.Errorf("last instant of today = %q, want pass", got)
	}
	if got := rule(lastInstant.Add(time.Nanosecond)); got != MsgPastDate {
		t.Errorf("first instant of tomorrow = %q, want %q", got, MsgPastDate)
	}
}

func TestCustom(t *testing.T) {
	even := Custom(func(v any) bool {
		n, ok := NumberOf(v)
		return ok && int(n)%2 == 0
	}, "deve ser par")

	if got := even(4); got != "" {
		t.Errorf("Custom(4) = %q, want pass", got)
	}
	if got := even(3); got != "deve ser par" {
		t.Errorf("Custom(3) = %q, want message", got)
	}
	if got := Custom(func(any) bool { return false }, "")(nil); got != MsgCustom {
		t.Errorf("Custom default message = %q, want %q", got, MsgCustom)
	}
}

func TestOneOf(t *testing.T) {
	rule := OneOf([]string{"Ativo", "em falta"}, "")

	tests := []struct {
		value any
		want  string
	}{
		{"", ""},
		{"Ativo", ""},
		{"ativo", ""},
		{" em falta ", ""},
		{"vendido", MsgOneOf},
	}

	for _, tt := range tests {
		if got := rule(tt.value); got != tt.want {
			t.Errorf("OneOf(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
