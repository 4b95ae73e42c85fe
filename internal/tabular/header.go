// Package tabular serializes asset records to CSV, JSON and XLSX and parses
// CSV uploads back into validated records.
//
// Column formatting is driven by an explicit Kind on each Header. NewHeader
// derives the kind from the key once (keys containing "valor" are money,
// keys containing "data" are dates); presets may override it.
package tabular

import "strings"

// Kind selects how a column is formatted on export and coerced on import.
type Kind int

const (
	KindText Kind = iota
	KindMoney
	KindDate
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindMoney:
		return "money"
	case KindDate:
		return "date"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "text"
	}
}

// Header describes one output column.
type Header struct {
	Key   string
	Label string
	Kind  Kind
	// Width is a spreadsheet column width hint in characters. Zero leaves
	// the default.
	Width float64
}

// Record is one exported or imported row keyed by column key.
type Record map[string]any

// NewHeader builds a header whose kind follows the key convention.
func NewHeader(key, label string) Header {
	return Header{Key: key, Label: label, Kind: KindForKey(key)}
}

// KindForKey derives a column kind from its key.
func KindForKey(key string) Kind {
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "valor"):
		return KindMoney
	case strings.Contains(k, "data"):
		return KindDate
	default:
		return KindText
	}
}

func (h Header) as(kind Kind) Header {
	h.Kind = kind
	return h
}

func (h Header) width(w float64) Header {
	h.Width = w
	return h
}

// Labels returns the header labels in order.
func Labels(headers []Header) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = h.Label
	}
	return out
}

// AssetHeaders is the CSV column set for assets.
func AssetHeaders() []Header {
	return []Header{
		NewHeader("codigo", "Código").as(KindNumber),
		NewHeader("tipo", "Tipo"),
		NewHeader("conteudo", "Conteúdo"),
		NewHeader("descricao", "Descrição"),
		NewHeader("categoria", "Categoria"),
		NewHeader("quantidade", "Quantidade").as(KindNumber),
		NewHeader("unidade", "Unidade"),
		NewHeader("valor_aquisicao", "Valor de Aquisição"),
		NewHeader("data_aquisicao", "Data de Aquisição"),
		NewHeader("localizacao_atual", "Localização Atual"),
		NewHeader("responsavel_atual", "Responsável Atual"),
		NewHeader("status", "Status"),
		NewHeader("observacoes", "Observações"),
		NewHeader("created_at", "Data de Cadastro").as(KindDate),
	}
}

// AssetExportHeaders is the spreadsheet column set for assets, with width
// hints and the computed valor_total column.
func AssetExportHeaders() []Header {
	return []Header{
		NewHeader("codigo", "Código").as(KindNumber).width(10),
		NewHeader("tipo", "Tipo").width(15),
		NewHeader("conteudo", "Conteúdo").width(25),
		NewHeader("descricao", "Descrição").width(30),
		NewHeader("categoria", "Categoria").width(18),
		NewHeader("quantidade", "Quantidade").as(KindNumber).width(10),
		NewHeader("unidade", "Unidade").width(10),
		NewHeader("localizacao_atual", "Localização").width(15),
		NewHeader("responsavel_atual", "Responsável").width(15),
		NewHeader("status", "Status").width(12),
		NewHeader("valor_aquisicao", "Valor Unitário").width(15),
		NewHeader("valor_total", "Valor Total").width(15),
		NewHeader("data_aquisicao", "Data Aquisição").width(12),
		NewHeader("observacoes", "Observações").width(20),
		NewHeader("created_at", "Criado em").as(KindDate).width(12),
		NewHeader("updated_at", "Atualizado em").as(KindDate).width(12),
	}
}

// MovementHeaders is the column set for movement history exports.
func MovementHeaders() []Header {
	return []Header{
		NewHeader("bem_codigo", "Código do Bem").as(KindNumber),
		NewHeader("bem_descricao", "Descrição do Bem"),
		NewHeader("data_movimentacao", "Data/Hora da Movimentação"),
		NewHeader("localizacao_origem", "Localização de Origem"),
		NewHeader("localizacao_destino", "Localização de Destino"),
		NewHeader("responsavel_origem", "Responsável de Origem"),
		NewHeader("responsavel_destino", "Responsável de Destino"),
		NewHeader("observacoes", "Observações"),
	}
}

func summaryHeaders(key, label string) []Header {
	return []Header{
		NewHeader(key, label),
		NewHeader("quantidade", "Quantidade").as(KindNumber),
		NewHeader("valor_total", "Valor Total"),
	}
}

// LocationSummaryHeaders is the column set of the inventory-by-location report.
func LocationSummaryHeaders() []Header { return summaryHeaders("localizacao", "Localização") }

// ResponsibleSummaryHeaders is the column set of the assets-by-custodian report.
func ResponsibleSummaryHeaders() []Header { return summaryHeaders("responsavel", "Responsável") }

// TypeSummaryHeaders is the column set of the summary-by-type report.
func TypeSummaryHeaders() []Header { return summaryHeaders("tipo", "Tipo") }

// StatusSummaryHeaders is the column set of the assets-by-status report.
func StatusSummaryHeaders() []Header { return summaryHeaders("status", "Status") }

// Import template names.
const (
	TemplateAssetsBasic    = "assets-basic"
	TemplateAssetsComplete = "assets-complete"
	TemplateMovements      = "movements"
)

// Template returns the header set of a named import/export template.
func Template(name string) ([]Header, bool) {
	switch name {
	case TemplateAssetsBasic:
		return []Header{
			NewHeader("codigo", "Código").as(KindNumber),
			NewHeader("descricao", "Descrição"),
			NewHeader("categoria", "Categoria"),
			NewHeader("status", "Status"),
		}, true
	case TemplateAssetsComplete:
		return []Header{
			NewHeader("codigo", "Código").as(KindNumber),
			NewHeader("descricao", "Descrição"),
			NewHeader("categoria", "Categoria"),
			NewHeader("valor_aquisicao", "Valor de Aquisição"),
			NewHeader("data_aquisicao", "Data de Aquisição"),
			NewHeader("localizacao_atual", "Localização Atual"),
			NewHeader("responsavel_atual", "Responsável Atual"),
			NewHeader("status", "Status"),
			NewHeader("observacoes", "Observações"),
			NewHeader("created_at", "Data de Cadastro").as(KindDate),
		}, true
	case TemplateMovements:
		return []Header{
			NewHeader("bem_codigo", "Código do Item").as(KindNumber),
			NewHeader("data_movimentacao", "Data da Movimentação"),
			NewHeader("localizacao_origem", "Localização de Origem"),
			NewHeader("localizacao_destino", "Localização de Destino"),
			NewHeader("responsavel_origem", "Responsável de Origem"),
			NewHeader("responsavel_destino", "Responsável de Destino"),
			NewHeader("observacoes", "Observações"),
		}, true
	}
	return nil, false
}

// TemplateNames lists the known template names.
func TemplateNames() []string {
	return []string{TemplateAssetsBasic, TemplateAssetsComplete, TemplateMovements}
}
