package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// Importer inserts parsed rows. *core.Service implements it.
type Importer interface {
	ImportAssets(ctx context.Context, rows []tabular.Record, batchSize int, progress core.ProgressFunc) (*core.BulkImportResult, error)
}

// ImportHandler processes TypeImportAssets tasks.
type ImportHandler struct {
	importer Importer
	log      *slog.Logger
}

// NewImportHandler creates a handler. A nil logger uses slog.Default.
func NewImportHandler(importer Importer, log *slog.Logger) *ImportHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ImportHandler{importer: importer, log: log}
}

// ProcessTask implements asynq.Handler.
func (h *ImportHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p ImportPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode import payload: %v: %w", err, asynq.SkipRetry)
	}

	ctx = core.ContextWithUserEmail(ctx, p.UserEmail)
	log := h.log.With("task", TypeImportAssets, "user", p.UserEmail, "rows", len(p.Rows))
	log.Info("import task started")

	res, err := h.importer.ImportAssets(ctx, p.Rows, p.BatchSize, func(pr core.ImportProgress) {
		log.Debug("import progress",
			"processed", pr.Processed,
			"total", pr.Total,
			"failed", pr.Failed,
		)
	})
	if errors.Is(err, core.ErrTooManyImports) {
		// Rejected before any insert; asynq retries it with backoff.
		return err
	}
	if err != nil {
		return fmt.Errorf("import assets: %v: %w", err, asynq.SkipRetry)
	}

	log.Info("import task finished", "success", res.Success, "failed", res.Failed)

	if w := t.ResultWriter(); w != nil {
		if body, err := json.Marshal(res); err == nil {
			if _, err := w.Write(body); err != nil {
				log.Warn("write task result failed", "error", err)
			}
		}
	}
	return nil
}

// RegisterHandlers wires every task handler into mux.
func RegisterHandlers(mux *asynq.ServeMux, importer Importer, log *slog.Logger) {
	mux.Handle(TypeImportAssets, NewImportHandler(importer, log))
}
