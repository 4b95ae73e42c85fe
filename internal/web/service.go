package web

import (
	"context"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/catalog"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// Inventory is the part of *core.Service the handlers use.
type Inventory interface {
	SearchAssets(ctx context.Context, page int, term string, filters core.SearchFilters) (*core.Page, error)
	RecentAssets(ctx context.Context) ([]core.Asset, error)
	GetAsset(ctx context.Context, id string) (*core.Asset, error)
	CreateAsset(ctx context.Context, in core.AssetInput) (*core.Asset, error)
	UpdateAsset(ctx context.Context, id string, in core.AssetInput) (*core.Asset, error)
	DeleteAsset(ctx context.Context, id string) error
	BatchUpdateStatus(ctx context.Context, ids []string, status string) (int64, error)
	UniqueLocations(ctx context.Context) ([]string, error)

	MoveAsset(ctx context.Context, id string, req core.MoveRequest) (*core.MoveResult, error)
	ListMovements(ctx context.Context, assetID string) ([]core.Movement, error)
	ListAllMovements(ctx context.Context, limit, offset int) ([]core.Movement, error)

	ExportAssets(ctx context.Context, format string, filters core.SearchFilters) (tabular.Result, error)
	ExportMovements(ctx context.Context, format string) (tabular.Result, error)
	Report(ctx context.Context, name, format string) (tabular.Result, error)
	Summary(ctx context.Context) (*core.Summary, error)
	ImportAssets(ctx context.Context, rows []tabular.Record, batchSize int, progress core.ProgressFunc) (*core.BulkImportResult, error)

	GetAuditLog(ctx context.Context, filter core.AuditLogFilter) (*core.AuditLogResult, error)
	RecordSignIn(ctx context.Context, email, sessionID string)
	RecordSignInFailed(ctx context.Context, email, reason string)
	RecordSignOut(ctx context.Context, email, sessionID string)

	Catalog() *catalog.Catalog
	Exporter() *tabular.Exporter
	Limiter() *core.ImportLimiter
	Ping(ctx context.Context) error
}

var _ Inventory = (*core.Service)(nil)
