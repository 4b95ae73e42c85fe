package core

import (
	"context"
	"fmt"
	"sort"
)

// historyIgnored lists record fields that change on every write.
var historyIgnored = map[string]bool{
	"updated_at":  true,
	"created_at":  true,
	"valor_total": true,
}

// FieldChange is one edited field of an asset.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// changedFields compares two versions of an asset field by field, in
// field order.
func changedFields(before, after Asset) []FieldChange {
	oldRec, newRec := before.Record(), after.Record()

	var changes []FieldChange
	for field, nv := range newRec {
		if historyIgnored[field] {
			continue
		}
		o, n := historyValue(oldRec[field]), historyValue(nv)
		if o != n {
			changes = append(changes, FieldChange{Field: field, Old: o, New: n})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

func historyValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func assetDetails(a Asset) map[string]any {
	return map[string]any{
		"codigo":   a.Codigo,
		"tipo":     a.Tipo,
		"conteudo": a.Conteudo,
	}
}

func (s *Service) recordAssetCreated(ctx context.Context, a Asset) {
	s.recordAudit(ctx, AuditLogParams{
		Action:   ActionAssetCreate,
		EntityID: a.ID,
		Details:  assetDetails(a),
	})
}

func (s *Service) recordAssetUpdated(ctx context.Context, before, after Asset) {
	details := assetDetails(after)
	details["changes"] = changedFields(before, after)
	s.recordAudit(ctx, AuditLogParams{
		Action:   ActionAssetUpdate,
		EntityID: after.ID,
		Details:  details,
	})
}

func (s *Service) recordAssetDeleted(ctx context.Context, a Asset) {
	s.recordAudit(ctx, AuditLogParams{
		Action:   ActionAssetDelete,
		EntityID: a.ID,
		Details:  assetDetails(a),
	})
}

func (s *Service) recordAssetMoved(ctx context.Context, m Movement) {
	s.recordAudit(ctx, AuditLogParams{
		Action:   ActionAssetMove,
		EntityID: m.BemID,
		Details: map[string]any{
			"movement_id":         m.ID,
			"localizacao_origem":  m.LocalizacaoOrigem,
			"localizacao_destino": m.LocalizacaoDestino,
			"responsavel_origem":  m.ResponsavelOrigem,
			"responsavel_destino": m.ResponsavelDestino,
		},
	})
}

func (s *Service) recordStatusBatch(ctx context.Context, ids []string, status string, updated int64) {
	s.recordAudit(ctx, AuditLogParams{
		Action: ActionStatusBatch,
		Details: map[string]any{
			"ids":     ids,
			"status":  status,
			"updated": updated,
		},
	})
}

func (s *Service) recordImport(ctx context.Context, res *BulkImportResult) {
	s.recordAudit(ctx, AuditLogParams{
		Action: ActionImport,
		Details: map[string]any{
			"total":   res.Total,
			"success": res.Success,
			"failed":  res.Failed,
			"batches": len(res.Errors),
		},
	})
}

func (s *Service) recordExport(ctx context.Context, what, format string, rows int) {
	s.recordAudit(ctx, AuditLogParams{
		Action: ActionExport,
		Details: map[string]any{
			"export": what,
			"format": format,
			"rows":   rows,
		},
	})
}

// RecordSignIn logs a successful sign-in.
func (s *Service) RecordSignIn(ctx context.Context, email, sessionID string) {
	s.recordAudit(ctx, AuditLogParams{
		Action:    ActionSignIn,
		UserEmail: email,
		EntityID:  sessionID,
	})
}

// RecordSignInFailed logs a rejected sign-in attempt with its reason.
func (s *Service) RecordSignInFailed(ctx context.Context, email, reason string) {
	s.recordAudit(ctx, AuditLogParams{
		Action:    ActionSignInFailed,
		UserEmail: email,
		Details:   map[string]any{"reason": reason},
	})
}

// RecordSignOut logs the end of a session.
func (s *Service) RecordSignOut(ctx context.Context, email, sessionID string) {
	s.recordAudit(ctx, AuditLogParams{
		Action:    ActionSignOut,
		UserEmail: email,
		EntityID:  sessionID,
	})
}
