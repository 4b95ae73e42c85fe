package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
)

// handleAuditLog lists audit entries, newest first.
//
// Query parameters: action, since and until (RFC 3339 or YYYY-MM-DD),
// limit and offset.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.AuditLogFilter{
		Action: core.AuditAction(q.Get("action")),
		Limit:  parseIntParam(r, "limit", core.DefaultAuditLimit, 1),
		Offset: parseIntParam(r, "offset", 0, 0),
	}

	var err error
	if filter.StartTime, err = parseTimeParam(q.Get("since")); err != nil {
		s.respondError(w, r, badRequest(err), 0)
		return
	}
	if filter.EndTime, err = parseTimeParam(q.Get("until")); err != nil {
		s.respondError(w, r, badRequest(err), 0)
		return
	}

	result, err := s.svc.GetAuditLog(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func parseTimeParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %q", v)
	}
	return t, nil
}

type healthResponse struct {
	Status   string                   `json:"status"`
	Database string                   `json:"database"`
	Imports  core.ImportLimiterStatus `json:"imports"`
	Sessions int                      `json:"sessions"`
}

// handleHealth reports database reachability and import slot usage. It
// answers 503 when the database is unreachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Database: "ok",
		Imports:  s.svc.Limiter().Status(),
	}
	if s.gate != nil {
		resp.Sessions = s.gate.Store.Len()
	}

	status := http.StatusOK
	if err := s.svc.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = core.MapError(err).Message
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
