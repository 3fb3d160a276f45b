package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeIssuerRunner runs the issuance worker.
	ServiceModeIssuerRunner ServiceMode = "issuer-runner"
	// ServiceModeScheduler runs the fixed-interval trigger for the issuance worker.
	ServiceModeScheduler ServiceMode = "scheduler"
	// ServiceModeReaper runs the attempt-log reaper for cleanup.
	ServiceModeReaper ServiceMode = "reaper"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeIssuerRunner,
		ServiceModeScheduler,
		ServiceModeReaper,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeIssuerRunner,
			ServiceModeScheduler,
			ServiceModeReaper:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: issuer-runner, scheduler, reaper)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// IssuerRunnerConfig contains issuance worker configuration.
type IssuerRunnerConfig struct {
	// PollInterval is the scheduler tick interval for pending jobs.
	PollInterval time.Duration `env:"ISSUER_RUNNER_POLL_INTERVAL" envDefault:"10s"`

	// MaxRetries is the number of retryable failures a job may accumulate
	// before it is marked failed.
	MaxRetries int `env:"ISSUER_RUNNER_MAX_RETRIES" envDefault:"3"`

	// MaxInFlight caps concurrent issuance requests per run. Zero means
	// unbounded.
	MaxInFlight int64 `env:"ISSUER_RUNNER_MAX_IN_FLIGHT" envDefault:"0"`
}

// Sanitize applies guardrails to issuer runner configuration values.
func (i *IssuerRunnerConfig) Sanitize() {
	if i.PollInterval <= 0 {
		i.PollInterval = 10 * time.Second
	}
	// A slow poll lets the queue back up unnoticed.
	if i.PollInterval > 30*time.Second {
		i.PollInterval = 30 * time.Second
	}
	if i.MaxRetries < 1 {
		i.MaxRetries = 3
	}
	if i.MaxInFlight < 0 {
		i.MaxInFlight = 0
	}
}

// SchedulerConfig contains enqueue scheduler configuration. The scheduler
// sweeps completed signups on auto-trigger listings and enqueues issuance
// jobs for any that have none.
type SchedulerConfig struct {
	// Interval is the sweep tick interval.
	Interval time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"30s"`

	// BatchSize is the maximum number of signups to sweep per tick.
	BatchSize int `env:"SCHEDULER_BATCH_SIZE" envDefault:"50"`
}

// Sanitize applies guardrails to scheduler configuration values.
func (s *SchedulerConfig) Sanitize() {
	if s.Interval < 1*time.Second {
		s.Interval = 1 * time.Second
	}
	if s.BatchSize < 1 {
		s.BatchSize = 1
	}
}

// ReaperConfig contains attempt-log reaper service configuration.
type ReaperConfig struct {
	// Interval is the reaper tick interval.
	Interval time.Duration `env:"REAPER_INTERVAL" envDefault:"1h"`

	// SucceededLogMaxAge is the maximum age for attempt logs of succeeded
	// jobs before deletion. Logs for pending and failed jobs are never reaped.
	SucceededLogMaxAge time.Duration `env:"REAPER_SUCCEEDED_LOG_MAX_AGE" envDefault:"720h"` // 30 days

	// BatchSize is the maximum number of rows to delete per operation.
	// Batching prevents long locks and I/O spikes on large tables.
	BatchSize int `env:"REAPER_BATCH_SIZE" envDefault:"500"`
}

// Sanitize applies guardrails to reaper configuration values.
func (r *ReaperConfig) Sanitize() {
	// Enforce minimum intervals to prevent excessive database load
	if r.Interval < 1*time.Minute {
		r.Interval = 1 * time.Minute
	}
	if r.SucceededLogMaxAge < 24*time.Hour {
		r.SucceededLogMaxAge = 24 * time.Hour
	}

	// Enforce batch size bounds to prevent excessive locks or inefficiency
	if r.BatchSize < 1 {
		r.BatchSize = 1
	}
	if r.BatchSize > 10000 {
		r.BatchSize = 10000
	}
}
