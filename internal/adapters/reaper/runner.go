// Package reaper prunes attempt logs for jobs that finished successfully.
package reaper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/credkit/issuerd/internal/core"
)

const (
	defaultInterval  = 1 * time.Hour
	defaultRetention = 30 * 24 * time.Hour
	defaultBatchSize = 500
)

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Jobs      core.IssueJobRepository
	Interval  time.Duration
	Retention time.Duration
	BatchSize int
	Logger    *slog.Logger
}

// Runner periodically deletes attempt logs older than the retention window
// for jobs whose issuance succeeded. Logs for pending and failed jobs are
// kept for diagnosis.
type Runner struct {
	jobs      core.IssueJobRepository
	interval  time.Duration
	retention time.Duration
	batchSize int
	logger    *slog.Logger
}

// NewRunner creates a reaper runner.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Jobs == nil {
		return nil, errors.New("job repository is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	retention := opts.Retention
	if retention <= 0 {
		retention = defaultRetention
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		jobs:      opts.Jobs,
		interval:  interval,
		retention: retention,
		batchSize: batchSize,
		logger:    logger,
	}, nil
}

// Run starts the prune loop and runs until the context is cancelled. The
// first prune happens immediately so a freshly started reaper makes progress
// without waiting a full interval.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting log reaper",
		"interval", r.interval, "retention", r.retention)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "log reaper stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			r.prune(ctx)
		}
	}
}

// prune deletes in batches until a batch comes back short, so a large
// backlog is drained within a single tick without one unbounded delete.
func (r *Runner) prune(ctx context.Context) {
	cutoff := time.Now().Add(-r.retention)
	total := 0
	for {
		deleted, err := r.jobs.PruneSucceededLogs(ctx, cutoff, r.batchSize)
		if err != nil {
			r.logger.ErrorContext(ctx, "log prune failed", "error", err)
			return
		}
		total += deleted
		if deleted < r.batchSize {
			break
		}
	}
	if total > 0 {
		r.logger.InfoContext(ctx, "pruned succeeded job logs",
			"deleted", total, "cutoff", cutoff)
	}
}
