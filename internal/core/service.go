package core

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/cache"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/catalog"
	db "github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/database"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// ImportTimeout is the maximum duration for a bulk import.
var ImportTimeout = 5 * time.Minute

// DefaultBatchSize is the number of assets inserted per bulk import batch.
const DefaultBatchSize = 10

// DefaultRecentLimit is how many assets RecentAssets returns.
const DefaultRecentLimit = 10

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNoIDs         = errors.New("no asset ids given")
	ErrUnknownStatus = errors.New("unknown status")
)

// Options configures a Service. Zero fields take defaults.
type Options struct {
	Cache     cache.QueryCache
	Catalog   *catalog.Catalog
	Exporter  *tabular.Exporter
	Limiter   *ImportLimiter
	Logger    *slog.Logger
	BatchSize int
	Retry     RetryPolicy
}

// Service implements the asset repository and the operations built on it:
// search, CRUD, custody moves, bulk import, exports and reports.
type Service struct {
	pool     Pool
	queries  *db.Queries
	cache    *cache.Versioned
	catalog  *catalog.Catalog
	exporter *tabular.Exporter
	limiter  *ImportLimiter
	log      *slog.Logger
	batch    int
	retry    RetryPolicy
	recent   *StagedList[Asset]
	now      func() time.Time
}

// NewService creates a Service backed by pool.
func NewService(pool Pool, opts Options) *Service {
	s := &Service{
		pool:     pool,
		queries:  db.New(pool),
		cache:    cache.NewVersioned(opts.Cache),
		catalog:  opts.Catalog,
		exporter: opts.Exporter,
		limiter:  opts.Limiter,
		log:      opts.Logger,
		batch:    opts.BatchSize,
		retry:    opts.Retry,
		now:      time.Now,
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.exporter == nil {
		s.exporter = tabular.NewExporter()
	}
	if s.limiter == nil {
		s.limiter = NewImportLimiter(0, 0)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.batch <= 0 {
		s.batch = DefaultBatchSize
	}
	if s.retry.Attempts <= 0 {
		s.retry = DefaultRetryPolicy
	}
	s.recent = NewStagedList[Asset](func(a Asset) string { return a.ID }, s.cache)
	return s
}

// Catalog returns the option lists the service validates against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Exporter returns the exporter used for files.
func (s *Service) Exporter() *tabular.Exporter {
	return s.exporter
}

// Limiter returns the import concurrency limiter.
func (s *Service) Limiter() *ImportLimiter {
	return s.limiter
}

// Ping checks database connectivity.
func (s *Service) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// invalidate drops cached search pages after a mutation.
func (s *Service) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)
}
