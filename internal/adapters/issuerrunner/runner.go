// Package issuerrunner provides the fixed-interval loop that drives the
// issuance worker.
package issuerrunner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/credkit/issuerd/internal/core"
)

// MaxInterval is the safety ceiling on the poll interval. Operators cannot
// configure a slower poll; an excessive value would let the queue back up
// unnoticed.
const MaxInterval = 30 * time.Second

const defaultInterval = 10 * time.Second

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Worker   core.IssuerRunner
	Interval time.Duration
	Logger   *slog.Logger
}

// Runner invokes the issuance worker on a fixed wall-clock interval. Each
// tick dispatches a run without waiting for the previous one: overlapping
// runs are tolerated because every job transition is transactional, and a
// hung run must never stall the ticker.
type Runner struct {
	worker   core.IssuerRunner
	interval time.Duration
	logger   *slog.Logger
}

// NewRunner creates an issuance runner. The interval is clamped to
// MaxInterval regardless of configuration.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Worker == nil {
		return nil, errors.New("issuance worker is required")
	}
	interval := ClampInterval(opts.Interval)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{worker: opts.Worker, interval: interval, logger: logger}, nil
}

// ClampInterval normalizes a configured poll interval: non-positive values
// fall back to the default, anything above MaxInterval is clamped down.
func ClampInterval(interval time.Duration) time.Duration {
	if interval <= 0 {
		return defaultInterval
	}
	if interval > MaxInterval {
		return MaxInterval
	}
	return interval
}

// Interval returns the effective tick interval.
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Run starts the tick loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting issuance runner", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "issuance runner stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			go r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	start := time.Now()
	processed, err := r.worker.Run(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "issuance run failed", "error", err)
		return
	}
	if processed > 0 {
		r.logger.InfoContext(ctx, "issuance run finished",
			"jobs", processed, "elapsed", time.Since(start))
	}
}
