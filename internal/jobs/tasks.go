// Package jobs runs bulk asset imports in the background through asynq.
// The HTTP server enqueues an import task with the already parsed rows; the
// worker process inserts them with core.Service.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// TypeImportAssets is the task type of a background bulk import.
const TypeImportAssets = "assets:import"

// importTimeout bounds a single import task on the worker.
const importTimeout = 10 * time.Minute

// importMaxRetry caps retries of an import rejected by a saturated limiter.
const importMaxRetry = 3

// ImportPayload is the body of an import task.
type ImportPayload struct {
	Rows      []tabular.Record `json:"rows"`
	UserEmail string           `json:"user_email"`
	BatchSize int              `json:"batch_size"`
}

// NewImportTask builds an import task. Imports are not idempotent, so only a
// task rejected before its first insert is retried; ImportHandler marks every
// other failure with asynq.SkipRetry.
func NewImportTask(p ImportPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode import payload: %w", err)
	}
	return asynq.NewTask(TypeImportAssets, payload,
		asynq.MaxRetry(importMaxRetry),
		asynq.Timeout(importTimeout),
	), nil
}

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates a Client on the given Redis connection. An empty queue
// means the asynq default queue.
func NewClient(opt asynq.RedisConnOpt, queue string) *Client {
	if queue == "" {
		queue = "default"
	}
	return &Client{client: asynq.NewClient(opt), queue: queue}
}

// EnqueueImport schedules an import and returns the task id.
func (c *Client) EnqueueImport(ctx context.Context, p ImportPayload) (string, error) {
	task, err := NewImportTask(p)
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	if err != nil {
		return "", fmt.Errorf("enqueue import: %w", err)
	}
	return info.ID, nil
}

// Close releases the Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}
