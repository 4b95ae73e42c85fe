package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
)

// defaultMovementLimit caps GET /api/movements without a limit parameter.
const defaultMovementLimit = 100

// handleMoveAsset transfers an asset and records the movement.
func (s *Server) handleMoveAsset(w http.ResponseWriter, r *http.Request) {
	var req core.MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	result, err := s.svc.MoveAsset(WithRequestMetadata(r.Context(), r), chi.URLParam(r, "id"), req)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// handleAssetMovements lists the movements of one asset, newest first.
func (s *Server) handleAssetMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := s.svc.ListMovements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": movements})
}

// handleListMovements lists movements across all assets. limit=0 returns
// every movement.
func (s *Server) handleListMovements(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", defaultMovementLimit, 0)
	offset := parseIntParam(r, "offset", 0, 0)

	movements, err := s.svc.ListAllMovements(r.Context(), limit, offset)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   movements,
		"limit":  limit,
		"offset": offset,
	})
}
