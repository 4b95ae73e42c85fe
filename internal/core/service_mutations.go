package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	db "github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/database"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/validation"
)

// InputError rejects a form whose fields failed validation.
type InputError struct {
	Errors []validation.ValidationError
}

func (e *InputError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		parts[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AssetSchema returns the asset form rules with unidade and status pinned
// to the catalog.
func (s *Service) AssetSchema() validation.Schema {
	schema := validation.WithOptions(validation.AssetSchema(), "unidade", s.catalog.Units)
	return validation.WithOptions(schema, "status", s.catalog.Statuses)
}

func (s *Service) checkAsset(in AssetInput) (db.CreateAssetParams, error) {
	if errs := validation.Validate(s.AssetSchema(), in); len(errs) > 0 {
		return db.CreateAssetParams{}, &InputError{Errors: validation.List(errs, in)}
	}
	return s.assetParams(in)
}

// CreateAsset validates in and stores a new asset. While the insert runs the
// asset appears in RecentAssets under a temporary id.
func (s *Service) CreateAsset(ctx context.Context, in AssetInput) (*Asset, error) {
	params, err := s.checkAsset(in)
	if err != nil {
		return nil, err
	}

	tempID := s.recent.Stage(ctx, draftAsset(params))
	row, err := s.queries.CreateAsset(ctx, params)
	if err != nil {
		s.recent.Fail(ctx, tempID)
		return nil, fmt.Errorf("create asset: %w", err)
	}

	a := assetFromDB(row)
	s.recent.Confirm(ctx, tempID, a)
	s.recordAssetCreated(ctx, a)
	return &a, nil
}

// UpdateAsset validates in and replaces every editable field of asset id.
func (s *Service) UpdateAsset(ctx context.Context, id string, in AssetInput) (*Asset, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	params, err := s.checkAsset(in)
	if err != nil {
		return nil, err
	}

	before, err := s.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	row, err := s.queries.UpdateAsset(ctx, db.UpdateAssetParams{
		ID:               uid,
		Tipo:             params.Tipo,
		Conteudo:         params.Conteudo,
		Descricao:        params.Descricao,
		Categoria:        params.Categoria,
		Quantidade:       params.Quantidade,
		Unidade:          params.Unidade,
		ValorAquisicao:   params.ValorAquisicao,
		DataAquisicao:    params.DataAquisicao,
		LocalizacaoAtual: params.LocalizacaoAtual,
		ResponsavelAtual: params.ResponsavelAtual,
		Status:           params.Status,
		Observacoes:      params.Observacoes,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}

	after := assetFromDB(row)
	s.recent.Replace(ctx, after)
	s.recordAssetUpdated(ctx, *before, after)
	return &after, nil
}

// DeleteAsset removes asset id together with its movements.
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	before, err := s.GetAsset(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.queries.DeleteAsset(ctx, uid)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}

	s.recent.Remove(ctx, before.ID)
	s.recordAssetDeleted(ctx, *before)
	return nil
}

// BatchUpdateStatus sets status on every listed asset and returns how many
// rows changed. The status must be in the catalog.
func (s *Service) BatchUpdateStatus(ctx context.Context, ids []string, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	status = strings.TrimSpace(status)
	if !s.catalog.HasStatus(status) {
		return 0, fmt.Errorf("%w %q", ErrUnknownStatus, status)
	}

	uids := make([]pgtype.UUID, 0, len(ids))
	for _, id := range ids {
		uid, err := parseID(id)
		if err != nil {
			return 0, err
		}
		uids = append(uids, uid)
	}

	n, err := s.queries.UpdateAssetsStatus(ctx, db.UpdateAssetsStatusParams{
		Status: status,
		Ids:    uids,
	})
	if err != nil {
		return 0, fmt.Errorf("update status: %w", err)
	}

	s.invalidate(ctx)
	s.recordStatusBatch(ctx, ids, status, n)
	return n, nil
}

// draftAsset is the provisional view of an asset being inserted.
func draftAsset(p db.CreateAssetParams) Asset {
	return assetFromDB(db.Asset{
		Tipo:             p.Tipo,
		Conteudo:         p.Conteudo,
		Descricao:        p.Descricao,
		Categoria:        p.Categoria,
		Quantidade:       p.Quantidade,
		Unidade:          p.Unidade,
		ValorAquisicao:   p.ValorAquisicao,
		DataAquisicao:    p.DataAquisicao,
		LocalizacaoAtual: p.LocalizacaoAtual,
		ResponsavelAtual: p.ResponsavelAtual,
		Status:           p.Status,
		Observacoes:      p.Observacoes,
	})
}
