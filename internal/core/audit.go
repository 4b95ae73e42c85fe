package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	db "github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/database"
)

// DefaultAuditLimit is the page size of audit queries.
const DefaultAuditLimit = 50

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionAssetCreate  AuditAction = "asset_create"
	ActionAssetUpdate  AuditAction = "asset_update"
	ActionAssetDelete  AuditAction = "asset_delete"
	ActionAssetMove    AuditAction = "asset_move"
	ActionStatusBatch  AuditAction = "status_batch"
	ActionImport       AuditAction = "import"
	ActionExport       AuditAction = "export"
	ActionSignIn       AuditAction = "sign_in"
	ActionSignInFailed AuditAction = "sign_in_failed"
	ActionSignOut      AuditAction = "sign_out"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "low"
	SeverityMedium   AuditSeverity = "medium"
	SeverityHigh     AuditSeverity = "high"
	SeverityCritical AuditSeverity = "critical"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        string         `json:"id"`
	Action    AuditAction    `json:"action"`
	Severity  AuditSeverity  `json:"severity"`
	UserEmail string         `json:"userEmail,omitempty"`
	EntityID  string         `json:"entityId,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	IPAddress string         `json:"ipAddress,omitempty"`
	UserAgent string         `json:"userAgent,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
// Empty user, IP and user agent fields are taken from the context.
type AuditLogParams struct {
	Action    AuditAction
	UserEmail string
	EntityID  string
	Details   map[string]any
	IPAddress string
	UserAgent string
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionAssetDelete, ActionStatusBatch, ActionImport:
		return SeverityHigh
	case ActionSignInFailed:
		return SeverityCritical
	case ActionExport, ActionSignIn, ActionSignOut:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// LogAudit creates a new audit log entry.
func (s *Service) LogAudit(ctx context.Context, params AuditLogParams) (*AuditEntry, error) {
	if params.UserEmail == "" {
		params.UserEmail = GetUserEmailFromContext(ctx)
	}
	if params.IPAddress == "" {
		params.IPAddress = GetIPAddressFromContext(ctx)
	}
	if params.UserAgent == "" {
		params.UserAgent = GetUserAgentFromContext(ctx)
	}

	var details []byte
	if params.Details != nil {
		var err error
		details, err = json.Marshal(params.Details)
		if err != nil {
			details = nil
		}
	}

	row, err := s.queries.InsertAuditLog(ctx, db.InsertAuditLogParams{
		Action:    string(params.Action),
		Severity:  string(determineSeverity(params.Action)),
		UserEmail: ToPgText(params.UserEmail),
		EntityID:  ToPgText(params.EntityID),
		Details:   details,
		IpAddress: ToPgText(params.IPAddress),
		UserAgent: ToPgText(params.UserAgent),
	})
	if err != nil {
		return nil, err
	}
	return auditEntryFromDB(row), nil
}

// recordAudit logs an entry and reports failures without failing the
// operation that triggered it.
func (s *Service) recordAudit(ctx context.Context, params AuditLogParams) {
	if _, err := s.LogAudit(ctx, params); err != nil {
		s.log.WarnContext(ctx, "audit log write failed",
			"action", params.Action,
			"entity_id", params.EntityID,
			"error", err,
		)
	}
}

// AuditLogFilter contains filtering options for querying audit logs.
type AuditLogFilter struct {
	Action    AuditAction
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// AuditLogResult is one page of audit entries.
type AuditLogResult struct {
	Entries []AuditEntry `json:"entries"`
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}

// window resolves the filter's time bounds. Unset bounds cover everything
// up to a day from now.
func (f AuditLogFilter) window(now time.Time) (pgtype.Timestamptz, pgtype.Timestamptz) {
	start := f.StartTime
	if start.IsZero() {
		start = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	end := f.EndTime
	if end.IsZero() {
		end = now.Add(24 * time.Hour)
	}
	return pgtype.Timestamptz{Time: start, Valid: true}, pgtype.Timestamptz{Time: end, Valid: true}
}

// GetAuditLog retrieves audit log entries with optional filtering, newest
// first.
func (s *Service) GetAuditLog(ctx context.Context, filter AuditLogFilter) (*AuditLogResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultAuditLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	since, until := filter.window(s.now())
	action := ToPgText(string(filter.Action))

	var (
		rows  []db.AuditLog
		total int64
	)
	err := WithRetry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		rows, err = s.queries.ListAuditLogs(ctx, db.ListAuditLogsParams{
			Action:     action,
			Since:      since,
			Until:      until,
			PageLimit:  int32(filter.Limit),
			PageOffset: int32(filter.Offset),
		})
		if err != nil {
			return err
		}
		total, err = s.queries.CountAuditLogs(ctx, db.CountAuditLogsParams{
			Action: action,
			Since:  since,
			Until:  until,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	entries := make([]AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, *auditEntryFromDB(row))
	}
	return &AuditLogResult{Entries: entries, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// PurgeAuditLogs deletes entries older than retentionDays in batches of
// batchSize until none are left. It returns the number deleted.
func (s *Service) PurgeAuditLogs(ctx context.Context, retentionDays, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultPurgeBatchSize
	}
	var total int64
	for {
		n, err := s.queries.PurgeAuditLogs(ctx, db.PurgeAuditLogsParams{
			RetentionDays: int32(retentionDays),
			BatchSize:     int32(batchSize),
		})
		if err != nil {
			return total, err
		}
		total += n
		if n < int64(batchSize) || ctx.Err() != nil {
			return total, nil
		}
	}
}

func auditEntryFromDB(row db.AuditLog) *AuditEntry {
	entry := &AuditEntry{
		ID:        PgUUIDToString(row.ID),
		Action:    AuditAction(row.Action),
		Severity:  AuditSeverity(row.Severity),
		UserEmail: textOf(row.UserEmail),
		EntityID:  textOf(row.EntityID),
		IPAddress: textOf(row.IpAddress),
		UserAgent: textOf(row.UserAgent),
		CreatedAt: row.CreatedAt.Time,
	}
	if row.Details != nil {
		_ = json.Unmarshal(row.Details, &entry.Details)
	}
	return entry
}
