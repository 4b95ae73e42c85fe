package core

// convert.go maps between the domain types, the sqlc row types and the
// records used by the tabular exporter. Optional columns travel as invalid
// pgtype values so the database stores NULL.

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	db "github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/database"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/validation"
)

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate converts an optional date to pgtype.Date.
func ToPgDate(t *time.Time) pgtype.Date {
	if t == nil || t.IsZero() {
		return pgtype.Date{Valid: false}
	}
	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// ToPgNumeric converts an optional decimal to pgtype.Numeric.
func ToPgNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{Valid: false}
	}
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// NumericToDecimal converts pgtype.Numeric back to a decimal. NULL, NaN and
// infinities become nil.
func NumericToDecimal(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return nil
	}
	d := decimal.NewFromBigInt(n.Int, n.Exp)
	return &d
}

// ToPgUUID converts a string to pgtype.UUID.
// Returns invalid if the string is empty or not a valid UUID.
func ToPgUUID(s string) pgtype.UUID {
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

// PgUUIDToString converts a pgtype.UUID to its string representation.
// Returns empty string if the UUID is invalid.
func PgUUIDToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

// parseID converts an asset id, treating malformed ids as unknown assets.
func parseID(id string) (pgtype.UUID, error) {
	u := ToPgUUID(strings.TrimSpace(id))
	if !u.Valid {
		return u, fmt.Errorf("%w: %q", ErrAssetNotFound, id)
	}
	return u, nil
}

func textOf(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

func dateOf(d pgtype.Date) *time.Time {
	if !d.Valid || d.InfinityModifier != pgtype.Finite {
		return nil
	}
	t := d.Time
	return &t
}

func assetFromDB(a db.Asset) Asset {
	return Asset{
		ID:               PgUUIDToString(a.ID),
		Codigo:           int(a.Codigo),
		Tipo:             a.Tipo,
		Conteudo:         a.Conteudo,
		Descricao:        textOf(a.Descricao),
		Categoria:        textOf(a.Categoria),
		Quantidade:       int(a.Quantidade),
		Unidade:          a.Unidade,
		ValorAquisicao:   NumericToDecimal(a.ValorAquisicao),
		DataAquisicao:    dateOf(a.DataAquisicao),
		LocalizacaoAtual: textOf(a.LocalizacaoAtual),
		ResponsavelAtual: textOf(a.ResponsavelAtual),
		Status:           a.Status,
		Observacoes:      textOf(a.Observacoes),
		CreatedAt:        a.CreatedAt.Time,
		UpdatedAt:        a.UpdatedAt.Time,
	}
}

func assetsFromDB(rows []db.Asset) []Asset {
	out := make([]Asset, len(rows))
	for i, r := range rows {
		out[i] = assetFromDB(r)
	}
	return out
}

func assetFromSearchRow(r db.SearchAssetsRow) Asset {
	return assetFromDB(db.Asset{
		ID:               r.ID,
		Codigo:           r.Codigo,
		Tipo:             r.Tipo,
		Conteudo:         r.Conteudo,
		Descricao:        r.Descricao,
		Categoria:        r.Categoria,
		Quantidade:       r.Quantidade,
		Unidade:          r.Unidade,
		ValorAquisicao:   r.ValorAquisicao,
		DataAquisicao:    r.DataAquisicao,
		LocalizacaoAtual: r.LocalizacaoAtual,
		ResponsavelAtual: r.ResponsavelAtual,
		Status:           r.Status,
		Observacoes:      r.Observacoes,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	})
}

func movementFromDB(m db.Movement) Movement {
	return Movement{
		ID:                 PgUUIDToString(m.ID),
		BemID:              PgUUIDToString(m.BemID),
		DataMovimentacao:   m.DataMovimentacao.Time,
		LocalizacaoOrigem:  textOf(m.LocalizacaoOrigem),
		LocalizacaoDestino: m.LocalizacaoDestino,
		ResponsavelOrigem:  textOf(m.ResponsavelOrigem),
		ResponsavelDestino: m.ResponsavelDestino,
		Observacoes:        textOf(m.Observacoes),
		CreatedAt:          m.CreatedAt.Time,
	}
}

func movementFromListRow(r db.ListMovementsRow) Movement {
	m := movementFromDB(db.Movement{
		ID:                 r.ID,
		BemID:              r.BemID,
		DataMovimentacao:   r.DataMovimentacao,
		LocalizacaoOrigem:  r.LocalizacaoOrigem,
		LocalizacaoDestino: r.LocalizacaoDestino,
		ResponsavelOrigem:  r.ResponsavelOrigem,
		ResponsavelDestino: r.ResponsavelDestino,
		Observacoes:        r.Observacoes,
		CreatedAt:          r.CreatedAt,
	})
	m.BemCodigo = int(r.BemCodigo)
	m.BemDescricao = textOf(r.BemDescricao)
	return m
}

// Record flattens an asset for export. valor_total is the unit value times
// the quantity.
func (a Asset) Record() tabular.Record {
	rec := tabular.Record{
		"id":                a.ID,
		"codigo":            a.Codigo,
		"tipo":              a.Tipo,
		"conteudo":          a.Conteudo,
		"descricao":         a.Descricao,
		"categoria":         a.Categoria,
		"quantidade":        a.Quantidade,
		"unidade":           a.Unidade,
		"localizacao_atual": a.LocalizacaoAtual,
		"responsavel_atual": a.ResponsavelAtual,
		"status":            a.Status,
		"observacoes":       a.Observacoes,
		"created_at":        a.CreatedAt,
		"updated_at":        a.UpdatedAt,
		"valor_aquisicao":   nil,
		"valor_total":       nil,
		"data_aquisicao":    nil,
	}
	if a.ValorAquisicao != nil {
		rec["valor_aquisicao"] = *a.ValorAquisicao
		rec["valor_total"] = a.ValorAquisicao.Mul(decimal.NewFromInt(int64(a.Quantidade)))
	}
	if a.DataAquisicao != nil {
		rec["data_aquisicao"] = *a.DataAquisicao
	}
	return rec
}

// Record flattens a movement for export.
func (m Movement) Record() tabular.Record {
	return tabular.Record{
		"id":                  m.ID,
		"bem_id":              m.BemID,
		"bem_codigo":          m.BemCodigo,
		"bem_descricao":       m.BemDescricao,
		"data_movimentacao":   m.DataMovimentacao,
		"localizacao_origem":  m.LocalizacaoOrigem,
		"localizacao_destino": m.LocalizacaoDestino,
		"responsavel_origem":  m.ResponsavelOrigem,
		"responsavel_destino": m.ResponsavelDestino,
		"observacoes":         m.Observacoes,
		"created_at":          m.CreatedAt,
	}
}

func assetRecords(assets []Asset) []tabular.Record {
	out := make([]tabular.Record, len(assets))
	for i, a := range assets {
		out[i] = a.Record()
	}
	return out
}

// inputString renders a form value as trimmed text.
func inputString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) {
			return fmt.Sprintf("%.0f", t)
		}
		return fmt.Sprint(t)
	case time.Time:
		return t.Format("2006-01-02")
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// inputDecimal parses a money value given as a JSON number, a plain decimal
// string or a pt-BR currency string.
func inputDecimal(v any) (*decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case decimal.Decimal:
		return &t, nil
	case float64:
		d := decimal.NewFromFloat(t)
		return &d, nil
	case int:
		d := decimal.NewFromInt(int64(t))
		return &d, nil
	case int64:
		d := decimal.NewFromInt(t)
		return &d, nil
	}

	s := inputString(v)
	if s == "" {
		return nil, nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return &d, nil
	}
	d, err := tabular.ParseMoney(s, ',')
	if err != nil {
		return nil, fmt.Errorf("invalid number: %q", s)
	}
	return &d, nil
}

func inputDate(v any) (*time.Time, error) {
	if inputString(v) == "" {
		return nil, nil
	}
	t, ok := validation.DateOf(v)
	if !ok {
		return nil, fmt.Errorf("invalid date: %v", v)
	}
	return &t, nil
}

func inputInt(v any, def int) (int, error) {
	if inputString(v) == "" {
		return def, nil
	}
	n, ok := validation.NumberOf(v)
	if !ok || n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("invalid number: %v", v)
	}
	return int(n), nil
}

// assetParams converts validated input into insert parameters. Missing
// status takes the catalog default; missing quantity is 1.
func (s *Service) assetParams(in AssetInput) (db.CreateAssetParams, error) {
	qty, err := inputInt(in["quantidade"], 1)
	if err != nil {
		return db.CreateAssetParams{}, err
	}
	valor, err := inputDecimal(in["valor_aquisicao"])
	if err != nil {
		return db.CreateAssetParams{}, err
	}
	data, err := inputDate(in["data_aquisicao"])
	if err != nil {
		return db.CreateAssetParams{}, err
	}

	status := inputString(in["status"])
	if status == "" {
		status = s.catalog.DefaultStatus
	}
	categoria := inputString(in["categoria"])
	if categoria == "" {
		categoria = inputString(in["tipo"])
	}

	return db.CreateAssetParams{
		Tipo:             inputString(in["tipo"]),
		Conteudo:         inputString(in["conteudo"]),
		Descricao:        ToPgText(inputString(in["descricao"])),
		Categoria:        ToPgText(categoria),
		Quantidade:       int32(qty),
		Unidade:          inputString(in["unidade"]),
		ValorAquisicao:   ToPgNumeric(valor),
		DataAquisicao:    ToPgDate(data),
		LocalizacaoAtual: ToPgText(inputString(in["localizacao_atual"])),
		ResponsavelAtual: ToPgText(inputString(in["responsavel_atual"])),
		Status:           status,
		Observacoes:      ToPgText(inputString(in["observacoes"])),
	}, nil
}
