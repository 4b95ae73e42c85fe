package core

// scheduler.go runs the audit log retention job. Entries older than the
// retention window are deleted in batches, once at start and then on every
// tick. Failures are logged and retried on the next tick.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPurgeBatchSize is the number of audit rows deleted per statement.
const DefaultPurgeBatchSize = 5000

// PurgeConfig holds configuration for the audit purge scheduler.
// Zero fields take defaults.
type PurgeConfig struct {
	RetentionDays int           // Days to keep audit entries (default: 365)
	BatchSize     int           // Rows per delete (default: 5000)
	CheckInterval time.Duration // How often to run (default: 24h)
}

func (c PurgeConfig) withDefaults() PurgeConfig {
	if c.RetentionDays <= 0 {
		c.RetentionDays = 365
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultPurgeBatchSize
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 24 * time.Hour
	}
	return c
}

// StartPurgeScheduler purges old audit entries immediately, then every
// CheckInterval, until ctx is cancelled. It blocks; run it in a goroutine.
func (s *Service) StartPurgeScheduler(ctx context.Context, cfg PurgeConfig) {
	cfg = cfg.withDefaults()
	s.log.Info("audit purge scheduler started",
		"retention_days", cfg.RetentionDays,
		"batch_size", cfg.BatchSize,
		"interval", cfg.CheckInterval.String(),
	)

	s.runPurgeJob(ctx, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("audit purge scheduler stopped")
			return
		case <-ticker.C:
			s.runPurgeJob(ctx, cfg)
		}
	}
}

// runPurgeJob performs one purge cycle.
func (s *Service) runPurgeJob(ctx context.Context, cfg PurgeConfig) {
	start := time.Now()

	purged, err := s.PurgeAuditLogs(ctx, cfg.RetentionDays, cfg.BatchSize)
	if err != nil {
		s.log.Error("audit purge failed", "error", err, "purged", purged)
		return
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "audit purge completed",
		slog.Int64("entries_purged", purged),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
}
