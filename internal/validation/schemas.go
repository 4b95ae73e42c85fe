package validation

import (
	"fmt"
	"sort"
)

// AssetSchema returns the rules for creating or editing an asset.
func AssetSchema() Schema {
	return Schema{
		"tipo": {
			Required("Tipo é obrigatório"),
		},
		"conteudo": {
			Required("Conteúdo é obrigatório"),
			MinLength(2, "Conteúdo deve ter pelo menos 2 caracteres"),
			MaxLength(255, "Conteúdo deve ter no máximo 255 caracteres"),
		},
		"descricao": {
			MaxLength(500, "Descrição deve ter no máximo 500 caracteres"),
		},
		"quantidade": {
			Required("Quantidade é obrigatória"),
			PositiveInteger("Quantidade deve ser um número inteiro positivo"),
		},
		"unidade": {
			Required("Unidade é obrigatória"),
		},
		"valor_aquisicao": {
			PositiveNumber("Valor deve ser um número positivo"),
		},
		"data_aquisicao": {
			PastDate("Data de aquisição não pode ser no futuro"),
		},
		"localizacao_atual": {
			MaxLength(255, "Localização deve ter no máximo 255 caracteres"),
		},
		"responsavel_atual": {
			MaxLength(255, "Responsável deve ter no máximo 255 caracteres"),
		},
		"observacoes": {
			MaxLength(1000, "Observações devem ter no máximo 1000 caracteres"),
		},
	}
}

// MovementSchema returns the rules for moving an asset to a new location
// and custodian.
func MovementSchema() Schema {
	return Schema{
		"localizacao_destino": {
			Required("Nova localização é obrigatória"),
			MaxLength(255, "Localização deve ter no máximo 255 caracteres"),
		},
		"responsavel_destino": {
			Required("Novo responsável é obrigatório"),
			MaxLength(255, "Responsável deve ter no máximo 255 caracteres"),
		},
		"observacoes": {
			MaxLength(1000, "Observações devem ter no máximo 1000 caracteres"),
		},
	}
}

// LoginSchema returns the rules for the sign-in form.
func LoginSchema() Schema {
	return Schema{
		"email":    {Required("Email é obrigatório"), Email("")},
		"password": {Required("Senha é obrigatória")},
	}
}

// WithOptions returns a copy of schema where field additionally must be one
// of allowed. Existing rules for the field run first.
func WithOptions(schema Schema, field string, allowed []string) Schema {
	out := make(Schema, len(schema)+1)
	for name, rules := range schema {
		out[name] = append([]Rule(nil), rules...)
	}
	out[field] = append(out[field], OneOf(allowed, fmt.Sprintf("Valor não permitido para %s", field)))
	return out
}

// ValidationError describes one failing field, for API responses.
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// List flattens an error map into ValidationErrors sorted by field, pulling
// the offending values from values when given.
func List(errs map[string]string, values map[string]any) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for field, msg := range errs {
		out = append(out, ValidationError{Field: field, Value: values[field], Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
