package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	db "github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/database"
)

// Pool is the database handle used by Service. *pgxpool.Pool satisfies it.
type Pool interface {
	db.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// Asset is a tracked physical item (bem patrimonial).
type Asset struct {
	ID               string           `json:"id"`
	Codigo           int              `json:"codigo"`
	Tipo             string           `json:"tipo"`
	Conteudo         string           `json:"conteudo"`
	Descricao        string           `json:"descricao"`
	Categoria        string           `json:"categoria"`
	Quantidade       int              `json:"quantidade"`
	Unidade          string           `json:"unidade"`
	ValorAquisicao   *decimal.Decimal `json:"valor_aquisicao"`
	DataAquisicao    *time.Time       `json:"data_aquisicao"`
	LocalizacaoAtual string           `json:"localizacao_atual"`
	ResponsavelAtual string           `json:"responsavel_atual"`
	Status           string           `json:"status"`
	Observacoes      string           `json:"observacoes"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// AssetInput carries form values for creating or editing an asset, keyed
// by column name. Values are strings, numbers or dates as decoded from JSON.
type AssetInput map[string]any

// SearchFilters narrow an asset search. Empty fields are ignored.
type SearchFilters struct {
	Tipo        string `json:"tipo,omitempty"`
	Status      string `json:"status,omitempty"`
	Localizacao string `json:"localizacao,omitempty"`
}

// Map returns the set filters keyed by name.
func (f SearchFilters) Map() map[string]string {
	m := make(map[string]string, 3)
	if f.Tipo != "" {
		m["tipo"] = f.Tipo
	}
	if f.Status != "" {
		m["status"] = f.Status
	}
	if f.Localizacao != "" {
		m["localizacao"] = f.Localizacao
	}
	return m
}

// Page is one page of search results.
type Page struct {
	Data       []Asset `json:"data"`
	Count      int64   `json:"count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// MoveRequest transfers an asset to a new location and custodian.
type MoveRequest struct {
	LocalizacaoDestino string    `json:"localizacao_destino"`
	ResponsavelDestino string    `json:"responsavel_destino"`
	Observacoes        string    `json:"observacoes"`
	DataMovimentacao   time.Time `json:"data_movimentacao"`
}

// Movement is an immutable transfer record.
type Movement struct {
	ID                 string    `json:"id"`
	BemID              string    `json:"bem_id"`
	BemCodigo          int       `json:"bem_codigo,omitempty"`
	BemDescricao       string    `json:"bem_descricao,omitempty"`
	DataMovimentacao   time.Time `json:"data_movimentacao"`
	LocalizacaoOrigem  string    `json:"localizacao_origem"`
	LocalizacaoDestino string    `json:"localizacao_destino"`
	ResponsavelOrigem  string    `json:"responsavel_origem"`
	ResponsavelDestino string    `json:"responsavel_destino"`
	Observacoes        string    `json:"observacoes"`
	CreatedAt          time.Time `json:"created_at"`
}

// MoveResult is the outcome of MoveAsset.
type MoveResult struct {
	Asset    Asset    `json:"asset"`
	Movement Movement `json:"movement"`
}

// ImportProgress is reported after every batch of a bulk import.
type ImportProgress struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
	Success   int `json:"success"`
	Failed    int `json:"failed"`
}

// ProgressFunc receives bulk import progress.
type ProgressFunc func(ImportProgress)

// BatchError records a batch that could not be inserted. Batch is 1-based.
type BatchError struct {
	Batch int    `json:"batch"`
	Error string `json:"error"`
}

// BulkImportResult summarizes a bulk import.
type BulkImportResult struct {
	Total   int          `json:"total"`
	Success int          `json:"success"`
	Failed  int          `json:"failed"`
	Errors  []BatchError `json:"errors"`
}

// ReportRow is one line of a grouped report.
type ReportRow struct {
	Key        string          `json:"key"`
	Quantidade int             `json:"quantidade"`
	ValorTotal decimal.Decimal `json:"valor_total"`
}
