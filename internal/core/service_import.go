package core

import (
	"context"
	"fmt"
	"maps"

	db "github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/database"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/validation"
)

// batchInserter stores one batch of rows, all or nothing.
type batchInserter func(ctx context.Context, batch []tabular.Record) error

// ImportAssets inserts rows produced by the tabular importer in batches of
// batchSize (the service default when non-positive). A failed batch is
// recorded and the import continues with the next one. progress, if set,
// is called after every batch.
//
// The call waits for an import slot and fails with ErrTooManyImports when
// none frees up in time.
func (s *Service) ImportAssets(ctx context.Context, rows []tabular.Record, batchSize int, progress ProgressFunc) (*BulkImportResult, error) {
	if batchSize <= 0 {
		batchSize = s.batch
	}
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	importCtx, cancel := context.WithTimeout(ctx, ImportTimeout)
	defer cancel()

	s.log.InfoContext(ctx, "bulk import started", "rows", len(rows), "batch_size", batchSize)

	result := importBatches(importCtx, rows, batchSize, s.insertBatch, progress)

	s.invalidate(ctx)
	s.recordImport(ctx, result)
	s.log.InfoContext(ctx, "bulk import finished",
		"total", result.Total,
		"success", result.Success,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *Service) insertBatch(ctx context.Context, batch []tabular.Record) error {
	params := make([]db.InsertAssetsCopyParams, 0, len(batch))
	for i, rec := range batch {
		p, err := s.importParams(rec)
		if err != nil {
			return fmt.Errorf("row %d of batch: %w", i+1, err)
		}
		params = append(params, db.InsertAssetsCopyParams(p))
	}
	n, err := s.queries.InsertAssetsCopy(ctx, params)
	if err != nil {
		return err
	}
	if n != int64(len(params)) {
		return fmt.Errorf("inserted %d of %d rows", n, len(params))
	}
	return nil
}

// importParams fills the columns an import file may leave out (tipo falls
// back to categoria, conteudo to descricao, quantidade to 1, unidade and
// status to catalog values) and then applies the asset form rules.
func (s *Service) importParams(rec tabular.Record) (db.CreateAssetParams, error) {
	in := AssetInput(maps.Clone(rec))
	if inputString(in["quantidade"]) == "" {
		in["quantidade"] = 1
	}
	if inputString(in["tipo"]) == "" {
		in["tipo"] = in["categoria"]
	}
	if inputString(in["conteudo"]) == "" {
		in["conteudo"] = in["descricao"]
	}
	if !s.catalog.HasUnit(inputString(in["unidade"])) {
		in["unidade"] = s.defaultUnit()
	}
	if !s.catalog.HasStatus(inputString(in["status"])) {
		in["status"] = s.catalog.DefaultStatus
	}
	if errs := validation.Validate(s.AssetSchema(), in); len(errs) > 0 {
		return db.CreateAssetParams{}, &InputError{Errors: validation.List(errs, in)}
	}

	p, err := s.assetParams(in)
	if err != nil {
		return p, err
	}
	if p.Quantidade <= 0 {
		return p, fmt.Errorf("invalid number: quantidade %d", p.Quantidade)
	}
	return p, nil
}

func (s *Service) defaultUnit() string {
	if s.catalog.HasUnit("Unidade") || len(s.catalog.Units) == 0 {
		return "Unidade"
	}
	return s.catalog.Units[0]
}

// importBatches runs insert over consecutive batches of rows. Every row is
// counted as either success or failure; a failed batch adds all of its rows
// to Failed and one entry to Errors.
func importBatches(ctx context.Context, rows []tabular.Record, size int, insert batchInserter, progress ProgressFunc) *BulkImportResult {
	if size <= 0 {
		size = DefaultBatchSize
	}
	result := &BulkImportResult{Total: len(rows), Errors: []BatchError{}}

	for i := 0; i < len(rows); i += size {
		batch := rows[i:min(i+size, len(rows))]

		err := ctx.Err()
		if err == nil {
			err = insert(ctx, batch)
		}
		if err != nil {
			result.Failed += len(batch)
			result.Errors = append(result.Errors, BatchError{Batch: i/size + 1, Error: err.Error()})
		} else {
			result.Success += len(batch)
		}

		if progress != nil {
			progress(ImportProgress{
				Processed: min(i+size, len(rows)),
				Total:     len(rows),
				Success:   result.Success,
				Failed:    result.Failed,
			})
		}
	}
	return result
}
