// Package scheduler provides the periodic sweep that enqueues issuance jobs
// for auto-trigger signup completions that have none.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	defaultInterval  = 30 * time.Second
	defaultBatchSize = 50
)

// EnqueueSweeper enqueues jobs for completed signups that lack them.
type EnqueueSweeper interface {
	SweepUnenqueued(ctx context.Context, limit int) (int, error)
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Sweeper   EnqueueSweeper
	Interval  time.Duration
	BatchSize int
	Logger    *slog.Logger
}

// Runner periodically sweeps completed signups on auto-trigger listings and
// enqueues issuance jobs for any that have none. The completion hook covers
// the common path; the sweep catches completions recorded while the platform
// was down.
type Runner struct {
	sweeper   EnqueueSweeper
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

// NewRunner creates a scheduler runner.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Sweeper == nil {
		return nil, errors.New("enqueue sweeper is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
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
		sweeper:   opts.Sweeper,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}, nil
}

// Run starts the sweep loop and runs until the context is cancelled. The
// first sweep happens immediately.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting enqueue scheduler", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "enqueue scheduler stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Runner) sweep(ctx context.Context) {
	enqueued, err := r.sweeper.SweepUnenqueued(ctx, r.batchSize)
	if err != nil {
		r.logger.ErrorContext(ctx, "enqueue sweep failed", "error", err)
		return
	}
	if enqueued > 0 {
		r.logger.InfoContext(ctx, "enqueue sweep finished", "jobs", enqueued)
	}
}
