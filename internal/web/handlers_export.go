package web

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// formatParam reads ?format=, defaulting to CSV.
func formatParam(r *http.Request) (string, error) {
	f, err := core.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		return "", badRequest(err)
	}
	return f, nil
}

// handleExportAssets downloads the assets matching the query filters.
func (s *Server) handleExportAssets(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	res, err := s.svc.ExportAssets(WithRequestMetadata(r.Context(), r), format, parseFilters(r))
	s.sendExport(w, r, res, err)
}

func (s *Server) handleExportMovements(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	res, err := s.svc.ExportMovements(WithRequestMetadata(r.Context(), r), format)
	s.sendExport(w, r, res, err)
}

// handleReport downloads one of the named reports.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "report")
	if !slices.Contains(core.ReportNames(), name) {
		s.respondError(w, r, fmt.Errorf("unknown report %q", name), http.StatusNotFound)
		return
	}
	format, err := formatParam(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	res, err := s.svc.Report(WithRequestMetadata(r.Context(), r), name, format)
	s.sendExport(w, r, res, err)
}

// handleSummary returns the dashboard figures as JSON.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Summary(r.Context())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleTemplate downloads a header-only CSV import template.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	res := s.svc.Exporter().TemplateFile(chi.URLParam(r, "name"))
	if !res.Success {
		s.respondError(w, r, res.Err, http.StatusNotFound)
		return
	}
	writeFile(w, res)
}

func (s *Server) sendExport(w http.ResponseWriter, r *http.Request, res tabular.Result, err error) {
	if err == nil && !res.Success {
		err = res.Err
	}
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeFile(w, res)
}
