package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// countingRule returns a rule that records how often it ran.
func countingRule(calls *int, msg string) Rule {
	return func(any) string {
		*calls++
		return msg
	}
}

func TestSchemaCheck_FirstFailingRuleWins(t *testing.T) {
	var first, second, third int
	schema := Schema{
		"campo": {
			countingRule(&first, ""),
			countingRule(&second, "segunda regra falhou"),
			countingRule(&third, "terceira regra falhou"),
		},
	}
	form := NewForm(schema, nil)

	if got := form.ValidateField("campo", "x"); got != "segunda regra falhou" {
		t.Errorf("ValidateField = %q, want message of the second rule", got)
	}
	if first != 1 || second != 1 {
		t.Errorf("rules before the failure ran %d/%d times, want 1/1", first, second)
	}
	if third != 0 {
		t.Errorf("rule after the failure ran %d times, want 0", third)
	}
}

func TestValidateField_PassingAndUnknown(t *testing.T) {
	form := NewForm(AssetSchema(), nil)

	if got := form.ValidateField("conteudo", "Bonecas"); got != "" {
		t.Errorf("ValidateField(valid) = %q, want empty", got)
	}
	if got := form.ValidateField("campo_inexistente", ""); got != "" {
		t.Errorf("ValidateField(unknown field) = %q, want empty", got)
	}
}

func TestAssetSchema_QuantityMustBeStrictlyPositive(t *testing.T) {
	schema := Schema{"quantidade": {Required(""), PositiveInteger("")}}

	tests := []struct {
		value any
		want  string
	}{
		{"0", MsgPositiveInteger},
		{"", MsgRequired},
		{"1", ""},
	}

	for _, tt := range tests {
		if got := schema.Check("quantidade", tt.value); got != tt.want {
			t.Errorf("quantidade=%#v: got %q, want %q", tt.value, got, tt.want)
		}
	}

	if got := AssetSchema().Check("quantidade", "0"); got != "Quantidade deve ser um número inteiro positivo" {
		t.Errorf("AssetSchema quantidade=0: got %q", got)
	}
}

func TestMovementSchema(t *testing.T) {
	errs := Validate(MovementSchema(), map[string]any{
		"localizacao_destino": "Sala 1",
	})

	want := map[string]string{"responsavel_destino": "Novo responsável é obrigatório"}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("Validate mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ValidateFormReplacesErrors(t *testing.T) {
	form := NewForm(MovementSchema(), map[string]any{})

	if form.ValidateForm() {
		t.Fatal("ValidateForm() = true on empty movement form")
	}
	if got := len(form.Errors()); got != 2 {
		t.Fatalf("errors = %d, want 2", got)
	}

	form.SetValue("localizacao_destino", "Sala 2")
	form.SetValue("responsavel_destino", "Dra. Ana")
	if !form.ValidateForm() {
		t.Fatalf("ValidateForm() = false, errors %v", form.Errors())
	}
	if !form.IsValid() || len(form.Errors()) != 0 {
		t.Errorf("errors after valid pass = %v, want none", form.Errors())
	}
}

func TestForm_SetValueClearsFieldError(t *testing.T) {
	form := NewForm(MovementSchema(), nil)
	form.ValidateForm()

	form.SetValue("localizacao_destino", "x")

	errs := form.Errors()
	if _, ok := errs["localizacao_destino"]; ok {
		t.Error("SetValue should clear the field error")
	}
	if _, ok := errs["responsavel_destino"]; !ok {
		t.Error("SetValue should not clear other fields' errors")
	}
}

func TestForm_HandleBlur(t *testing.T) {
	form := NewForm(AssetSchema(), nil)

	form.HandleBlur("conteudo", "a")
	if !form.Touched()["conteudo"] {
		t.Error("HandleBlur should mark the field touched")
	}
	if got := form.Errors()["conteudo"]; got != "Conteúdo deve ter pelo menos 2 caracteres" {
		t.Errorf("error after blur = %q", got)
	}

	form.HandleBlur("conteudo", "ab")
	if _, ok := form.Errors()["conteudo"]; ok {
		t.Error("HandleBlur with a valid value should clear the error")
	}
}

func TestForm_ResetFormReplacesValues(t *testing.T) {
	initial := map[string]any{"tipo": "Escritório", "conteudo": "Grampeador"}
	form := NewForm(AssetSchema(), initial)
	form.SetValue("quantidade", "3")
	form.HandleBlur("conteudo", "")

	form.ResetForm(map[string]any{"tipo": "Decoração"})

	if diff := cmp.Diff(map[string]any{"tipo": "Decoração"}, form.Values()); diff != "" {
		t.Errorf("values after reset mismatch (-want +got):\n%s", diff)
	}
	if len(form.Errors()) != 0 || len(form.Touched()) != 0 || form.IsSubmitting() {
		t.Error("reset should clear errors, touched and submitting")
	}

	form.ResetForm(nil)
	if diff := cmp.Diff(initial, form.Values()); diff != "" {
		t.Errorf("reset(nil) should restore initial values (-want +got):\n%s", diff)
	}
}

func TestForm_SubmitInvalidNeverCallsOnSubmit(t *testing.T) {
	schema := Schema{
		"conteudo":   {Required("")},
		"quantidade": {Required(""), PositiveInteger("")},
	}
	form := NewForm(schema, map[string]any{"conteudo": "Lápis", "quantidade": "0"})

	called := false
	result := form.SubmitForm(context.Background(), func(context.Context, map[string]any) error {
		called = true
		return nil
	})

	if called {
		t.Fatal("onSubmit must not run when validation fails")
	}
	if result.Success {
		t.Error("Success = true, want false")
	}
	want := map[string]string{"quantidade": MsgPositiveInteger}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Errorf("Errors mismatch (-want +got):\n%s", diff)
	}
	if form.IsSubmitting() {
		t.Error("submitting flag should be cleared after validation failure")
	}
	touched := form.Touched()
	if !touched["conteudo"] || !touched["quantidade"] {
		t.Errorf("all schema fields should be touched, got %v", touched)
	}
}

func TestForm_SubmitValid(t *testing.T) {
	form := NewForm(MovementSchema(), map[string]any{
		"localizacao_destino": "Recepção",
		"responsavel_destino": "Carlos",
	})

	var got map[string]any
	var submittingDuringCall bool
	result := form.SubmitForm(context.Background(), func(_ context.Context, values map[string]any) error {
		got = values
		submittingDuringCall = form.IsSubmitting()
		return nil
	})

	if !result.Success || result.Err != nil || len(result.Errors) != 0 {
		t.Fatalf("result = %+v, want success", result)
	}
	if !submittingDuringCall {
		t.Error("IsSubmitting should be true while onSubmit runs")
	}
	if got["localizacao_destino"] != "Recepção" {
		t.Errorf("onSubmit values = %v", got)
	}
	if form.IsSubmitting() {
		t.Error("submitting flag should be cleared after success")
	}
}

func TestForm_SubmitCallbackError(t *testing.T) {
	form := NewForm(Schema{}, nil)
	boom := errors.New("backend indisponível")

	result := form.SubmitForm(context.Background(), func(context.Context, map[string]any) error {
		return boom
	})

	if result.Success || !errors.Is(result.Err, boom) {
		t.Errorf("result = %+v, want failure wrapping callback error", result)
	}
	if form.IsSubmitting() {
		t.Error("submitting flag should be cleared after callback error")
	}
}

func TestWithOptions(t *testing.T) {
	schema := WithOptions(AssetSchema(), "status", []string{"Ativo", "quebrado"})

	if got := schema.Check("status", "Ativo"); got != "" {
		t.Errorf("allowed value rejected: %q", got)
	}
	if got := schema.Check("status", "perdido"); got == "" {
		t.Error("disallowed value accepted")
	}
	if got := schema.Check("unidade", ""); got != "Unidade é obrigatória" {
		t.Errorf("existing rules should be kept, got %q", got)
	}
	if _, ok := AssetSchema()["status"]; ok {
		t.Error("WithOptions must not modify the base schema")
	}
}

func TestList(t *testing.T) {
	got := List(map[string]string{"b": "erro b", "a": "erro a"}, map[string]any{"a": 1})
	want := []ValidationError{
		{Field: "a", Value: 1, Message: "erro a"},
		{Field: "b", Message: "erro b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}
