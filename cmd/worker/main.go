package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/application"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/config"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/jobs"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/logging"
)

func main() {
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log := logging.Setup(cfg.Logging.Level, cfg.Logging.Format).With("component", "worker")

	if !cfg.Redis.Enabled() {
		log.Error("worker requires REDIS_ADDR")
		os.Exit(1)
	}

	app, err := application.New(context.Background(), cfg)
	if err != nil {
		log.Error("failed to start application", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues:      map[string]int{cfg.Worker.Queue: 1},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error("task failed", "type", task.Type(), "error", err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	jobs.RegisterHandlers(mux, app.Service, log)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down worker...")
		srv.Shutdown()
	}()

	log.Info("worker starting", "concurrency", cfg.Worker.Concurrency, "queue", cfg.Worker.Queue)
	if err := srv.Run(mux); err != nil {
		log.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	log.Info("worker exited")
}
