package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
)

// parseIntParam parses an integer query parameter, falling back to def when
// it is missing, malformed or below min.
func parseIntParam(r *http.Request, name string, def, min int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return def
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < min {
		return def
	}
	return i
}

// parseFilters reads the tipo, status and localizacao query parameters.
func parseFilters(r *http.Request) core.SearchFilters {
	q := r.URL.Query()
	return core.SearchFilters{
		Tipo:        strings.TrimSpace(q.Get("tipo")),
		Status:      strings.TrimSpace(q.Get("status")),
		Localizacao: strings.TrimSpace(q.Get("localizacao")),
	}
}

// handleListAssets returns one page of the asset search.
func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	page := parseIntParam(r, "page", 1, 1)
	term := strings.TrimSpace(r.URL.Query().Get("search"))

	result, err := s.svc.SearchAssets(r.Context(), page, term, parseFilters(r))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecentAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.svc.RecentAssets(r.Context())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": assets})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := s.svc.GetAsset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// handleCreateAsset validates the form body and stores a new asset.
// Validation failures come back as 422 with the failing fields.
func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var in core.AssetInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	asset, err := s.svc.CreateAsset(WithRequestMetadata(r.Context(), r), in)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var in core.AssetInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	asset, err := s.svc.UpdateAsset(WithRequestMetadata(r.Context(), r), chi.URLParam(r, "id"), in)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.svc.DeleteAsset(WithRequestMetadata(r.Context(), r), id); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// handleBatchStatus sets one status on several assets.
func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs    []string `json:"ids"`
		Status string   `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	updated, err := s.svc.BatchUpdateStatus(WithRequestMetadata(r.Context(), r), req.IDs, req.Status)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": updated, "status": req.Status})
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.svc.UniqueLocations(r.Context())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": locations})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Catalog())
}
