package core

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDetermineSeverity(t *testing.T) {
	tests := []struct {
		action AuditAction
		want   AuditSeverity
	}{
		{ActionAssetCreate, SeverityMedium},
		{ActionAssetUpdate, SeverityMedium},
		{ActionAssetMove, SeverityMedium},
		{ActionAssetDelete, SeverityHigh},
		{ActionStatusBatch, SeverityHigh},
		{ActionImport, SeverityHigh},
		{ActionExport, SeverityLow},
		{ActionSignIn, SeverityLow},
		{ActionSignOut, SeverityLow},
		{ActionSignInFailed, SeverityCritical},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			if got := determineSeverity(tt.action); got != tt.want {
				t.Errorf("determineSeverity(%s) = %s, want %s", tt.action, got, tt.want)
			}
		})
	}
}

func TestAuditLogFilterWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	since, until := AuditLogFilter{}.window(now)
	if since.Time.Year() != 1970 || !until.Time.Equal(now.Add(24*time.Hour)) {
		t.Errorf("open window = %v..%v", since.Time, until.Time)
	}

	start := now.Add(-time.Hour)
	since, until = AuditLogFilter{StartTime: start, EndTime: now}.window(now)
	if !since.Time.Equal(start) || !until.Time.Equal(now) {
		t.Errorf("bounded window = %v..%v", since.Time, until.Time)
	}
}

func TestAuditContext(t *testing.T) {
	ctx := ContextWithUserEmail(context.Background(), "ana@clinica.com")
	ctx = ContextWithIPAddress(ctx, "10.0.0.5")
	ctx = ContextWithUserAgent(ctx, "curl/8")

	got := []string{GetUserEmailFromContext(ctx), GetIPAddressFromContext(ctx), GetUserAgentFromContext(ctx)}
	if diff := cmp.Diff([]string{"ana@clinica.com", "10.0.0.5", "curl/8"}, got); diff != "" {
		t.Errorf("context values mismatch (-want +got):\n%s", diff)
	}
	if GetUserEmailFromContext(context.Background()) != "" {
		t.Error("empty context should have no user")
	}
}

func TestChangedFields(t *testing.T) {
	before := Asset{ID: "1", Conteudo: "Mesa", Quantidade: 1, ValorAquisicao: dec("100"), UpdatedAt: time.Unix(1, 0)}
	after := Asset{ID: "1", Conteudo: "Mesa redonda", Quantidade: 2, ValorAquisicao: dec("100.00"), UpdatedAt: time.Unix(2, 0)}

	want := []FieldChange{
		{Field: "conteudo", Old: "Mesa", New: "Mesa redonda"},
		{Field: "quantidade", Old: "1", New: "2"},
	}
	if diff := cmp.Diff(want, changedFields(before, after)); diff != "" {
		t.Errorf("changedFields() mismatch (-want +got):\n%s", diff)
	}
}

func TestPurgeConfigDefaults(t *testing.T) {
	got := PurgeConfig{}.withDefaults()
	want := PurgeConfig{RetentionDays: 365, BatchSize: DefaultPurgeBatchSize, CheckInterval: 24 * time.Hour}
	if got != want {
		t.Errorf("withDefaults() = %+v, want %+v", got, want)
	}
}
