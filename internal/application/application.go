// Package application wires the configured infrastructure (database pool,
// Redis, query cache, option catalog) into the core service shared by the
// HTTP server and the import worker.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/auth"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/cache"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/catalog"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/config"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/database"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// App holds the long-lived resources of a process.
type App struct {
	Config  *config.Config
	Pool    *pgxpool.Pool
	Redis   *redis.Client // nil when REDIS_ADDR is unset
	Catalog *catalog.Catalog
	Service *core.Service
}

// New connects to the database (and Redis, when configured) and builds the
// core service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Pool: pool, Catalog: cat}
	if cfg.Redis.Enabled() {
		client, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, err
		}
		app.Redis = client
	}

	core.ImportTimeout = cfg.Import.Timeout
	app.Service = core.NewService(pool, core.Options{
		Cache:     app.queryCache(),
		Catalog:   cat,
		Exporter:  NewExporter(cfg.Export),
		Limiter:   core.NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime),
		Logger:    slog.Default().With("component", "core"),
		BatchSize: cfg.Import.BatchSize,
	})
	return app, nil
}

// queryCache picks Redis when available, else an in-process cache.
func (a *App) queryCache() cache.QueryCache {
	c := a.Config.Cache
	switch {
	case !c.Enabled:
		return cache.Noop{}
	case a.Redis != nil:
		return cache.NewRedis(a.Redis, c.KeyPrefix, c.TTL)
	default:
		return cache.NewMemory(c.MaxEntries, c.TTL)
	}
}

// Close releases the pool and the Redis client.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Warn("redis close failed", "error", err)
		}
	}
	a.Pool.Close()
}

// NewGate builds the sign-in gate from the configured allow-list.
func NewGate(cfg config.AuthConfig) (*auth.Gate, error) {
	provider, err := auth.ParseAllowList(cfg.Users)
	if err != nil {
		return nil, fmt.Errorf("AUTH_USERS: %w", err)
	}
	return auth.NewGate(provider, cfg.JWTSecret, cfg.Issuer, cfg.TokenTTL), nil
}

// NewExporter returns an exporter with the configured formatting.
func NewExporter(cfg config.ExportConfig) *tabular.Exporter {
	e := tabular.NewExporter()
	if r := []rune(cfg.Delimiter); len(r) == 1 {
		e.Delimiter = r[0]
	}
	if cfg.CurrencySymbol != "" {
		e.CurrencySymbol = cfg.CurrencySymbol
	}
	if cfg.DateLayout != "" {
		e.DateLayout = cfg.DateLayout
	}
	if cfg.ExportedBy != "" {
		e.ExportedBy = cfg.ExportedBy
	}
	if cfg.Version != "" {
		e.Version = cfg.Version
	}
	return e
}

// NewImporter returns an asset importer matching the export format, so
// exported files import back unchanged.
func NewImporter(imp config.ImportConfig, exp config.ExportConfig) *tabular.Importer {
	im := tabular.NewImporter()
	im.MaxBytes = imp.MaxFileSize
	if r := []rune(imp.DecimalSeparator); len(r) == 1 {
		im.DecimalSeparator = r[0]
	}
	if r := []rune(exp.Delimiter); len(r) == 1 {
		im.Delimiter = r[0]
	}
	if exp.DateLayout != "" {
		im.DateLayout = exp.DateLayout
	}
	return im
}
