package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/jobs"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/logging"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// multipartMemory is how much of an upload is kept in memory before
// spilling to a temp file.
const multipartMemory = 8 << 20

var errNoFile = errors.New("no file provided")

// importResponse reports the parse and, for inline imports, the insert.
type importResponse struct {
	FileName    string                 `json:"fileName"`
	TotalRows   int                    `json:"totalRows"`
	ValidRows   int                    `json:"validRows"`
	InvalidRows int                    `json:"invalidRows"`
	RowErrors   []tabular.RowError     `json:"rowErrors"`
	Import      *core.BulkImportResult `json:"import,omitempty"`
	JobID       string                 `json:"jobId,omitempty"`
}

// handleImport parses an uploaded CSV (form field "file") and inserts the
// valid rows. Rows that fail parsing are reported and skipped; a missing
// required column fails the whole upload. With async=true and a job queue
// configured, the rows are handed to the worker and 202 is returned.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if maxSize := s.cfg.Import.MaxFileSize; maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.respondError(w, r, badRequest(err), 0)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	logger := logging.WithFields(r.Context(), "file", header.Filename, "size", header.Size)

	parsed, err := s.newImporter().Import(file)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	resp := importResponse{
		FileName:    header.Filename,
		TotalRows:   parsed.TotalRows,
		ValidRows:   parsed.ValidRowCount,
		InvalidRows: parsed.InvalidRowCount,
		RowErrors:   parsed.Errors,
	}
	if resp.RowErrors == nil {
		resp.RowErrors = []tabular.RowError{}
	}
	if len(parsed.Rows) == 0 {
		logger.Info("import: no valid rows", "invalid", parsed.InvalidRowCount)
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	async, _ := strconv.ParseBool(r.FormValue("async"))

	if async && s.queue != nil {
		id, err := s.queue.EnqueueImport(ctx, jobs.ImportPayload{
			Rows:      parsed.Rows,
			UserEmail: core.GetUserEmailFromContext(ctx),
			BatchSize: s.cfg.Import.BatchSize,
		})
		if err != nil {
			s.respondError(w, r, err, http.StatusServiceUnavailable)
			return
		}
		logger.Info("import: enqueued", "job_id", id, "rows", len(parsed.Rows))
		resp.JobID = id
		writeJSON(w, http.StatusAccepted, resp)
		return
	}
	if async {
		logger.Warn("import: no job queue configured, importing inline")
	}

	result, err := s.svc.ImportAssets(ctx, parsed.Rows, s.cfg.Import.BatchSize, func(p core.ImportProgress) {
		logger.Debug("import: progress", "processed", p.Processed, "total", p.Total)
	})
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	logger.Info("import: done", "success", result.Success, "failed", result.Failed)

	resp.Import = result
	writeJSON(w, http.StatusOK, resp)
}
