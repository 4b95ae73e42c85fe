package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	db "github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/database"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/validation"
)

func (r MoveRequest) values() map[string]any {
	return map[string]any{
		"localizacao_destino": r.LocalizacaoDestino,
		"responsavel_destino": r.ResponsavelDestino,
		"observacoes":         r.Observacoes,
	}
}

// MoveAsset transfers asset id to a new location and custodian. The
// movement insert and the asset update commit together or not at all. The
// movement records the asset's previous location and custodian as origin.
func (s *Service) MoveAsset(ctx context.Context, id string, req MoveRequest) (*MoveResult, error) {
	values := req.values()
	if errs := validation.Validate(validation.MovementSchema(), values); len(errs) > 0 {
		return nil, &InputError{Errors: validation.List(errs, values)}
	}
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	when := req.DataMovimentacao
	if when.IsZero() {
		when = s.now()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin move: %w", err)
	}
	defer tx.Rollback(ctx)

	q := s.queries.WithTx(tx)

	current, err := q.GetAsset(ctx, uid)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load asset: %w", err)
	}

	mv, err := q.InsertMovement(ctx, db.InsertMovementParams{
		BemID:              uid,
		DataMovimentacao:   pgtype.Timestamptz{Time: when, Valid: true},
		LocalizacaoOrigem:  current.LocalizacaoAtual,
		LocalizacaoDestino: strings.TrimSpace(req.LocalizacaoDestino),
		ResponsavelOrigem:  current.ResponsavelAtual,
		ResponsavelDestino: strings.TrimSpace(req.ResponsavelDestino),
		Observacoes:        ToPgText(req.Observacoes),
	})
	if err != nil {
		return nil, fmt.Errorf("insert movement: %w", err)
	}

	row, err := q.UpdateAssetCustody(ctx, db.UpdateAssetCustodyParams{
		ID:               uid,
		LocalizacaoAtual: ToPgText(req.LocalizacaoDestino),
		ResponsavelAtual: ToPgText(req.ResponsavelDestino),
	})
	if err != nil {
		return nil, fmt.Errorf("update custody: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit move: %w", err)
	}

	result := &MoveResult{Asset: assetFromDB(row), Movement: movementFromDB(mv)}
	result.Movement.BemCodigo = result.Asset.Codigo
	result.Movement.BemDescricao = result.Asset.Descricao

	s.recent.Replace(ctx, result.Asset)
	s.recordAssetMoved(ctx, result.Movement)
	return result, nil
}

// ListMovements returns the movement history of one asset, newest first.
func (s *Service) ListMovements(ctx context.Context, assetID string) ([]Movement, error) {
	uid, err := parseID(assetID)
	if err != nil {
		return nil, err
	}

	var rows []db.ListMovementsByAssetRow
	err = WithRetry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		rows, err = s.queries.ListMovementsByAsset(ctx, uid)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}

	out := make([]Movement, len(rows))
	for i, r := range rows {
		out[i] = movementFromListRow(db.ListMovementsRow(r))
	}
	return out, nil
}

// ListAllMovements returns movements across all assets, newest first. A
// non-positive limit returns everything.
func (s *Service) ListAllMovements(ctx context.Context, limit, offset int) ([]Movement, error) {
	if limit <= 0 {
		limit = math.MaxInt32
	}
	offset = max(offset, 0)

	var rows []db.ListMovementsRow
	err := WithRetry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		rows, err = s.queries.ListMovements(ctx, db.ListMovementsParams{
			Limit:  int32(limit),
			Offset: int32(offset),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}

	out := make([]Movement, len(rows))
	for i, r := range rows {
		out[i] = movementFromListRow(r)
	}
	return out, nil
}
