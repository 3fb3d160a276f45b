package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/credkit/issuerd/internal/core"
	"github.com/credkit/issuerd/internal/domain/model"
)

// DefaultMaxRetries is the retry ceiling for transient issuance failures.
const DefaultMaxRetries = 3

// IssuerServiceOptions groups dependencies for IssuerService.
type IssuerServiceOptions struct {
	Jobs   core.IssueJobRepository
	Client core.IssuerClient
	// StatusCache is optional; when set, the pair's cached issue status is
	// invalidated after each recorded attempt.
	StatusCache core.StatusCacheRepository
	// MaxRetries caps transient-failure retries. Defaults to DefaultMaxRetries.
	MaxRetries int
	// MaxInFlight bounds concurrent issuance calls per run. Zero means
	// unbounded, matching the historical fire-and-forget behavior.
	MaxInFlight int64
	// Duplicates decides whether a 400 rejection is a duplicate issuance
	// and whether that counts as success. Nil disables the special case.
	Duplicates *DuplicateMatcher
	Logger     *slog.Logger
}

// IssuerService drains the pending job queue: each run re-reads pending
// jobs from the store, POSTs every payload to the issuance endpoint, and
// records each outcome in its own transaction. It implements
// core.IssuerRunner.
type IssuerService struct {
	jobs       core.IssueJobRepository
	client     core.IssuerClient
	cache      core.StatusCacheRepository
	maxRetries int
	sem        *semaphore.Weighted
	duplicates *DuplicateMatcher
	logger     *slog.Logger
}

// NewIssuerService constructs an IssuerService.
func NewIssuerService(opts IssuerServiceOptions) (*IssuerService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("issue job repository is required")
	}
	if opts.Client == nil {
		return nil, errors.New("issuer client is required")
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	var sem *semaphore.Weighted
	if opts.MaxInFlight > 0 {
		sem = semaphore.NewWeighted(opts.MaxInFlight)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IssuerService{
		jobs:       opts.Jobs,
		client:     opts.Client,
		cache:      opts.StatusCache,
		maxRetries: maxRetries,
		sem:        sem,
		duplicates: opts.Duplicates,
		logger:     logger,
	}, nil
}

// Run processes every currently pending job concurrently and returns the
// number of jobs attempted. Jobs settle independently: one job's HTTP or
// database failure never short-circuits its siblings, and per-job errors
// are logged rather than returned. The only error Run itself reports is a
// failure to read the queue.
func (s *IssuerService) Run(ctx context.Context) (int, error) {
	pending, err := s.jobs.ListPending(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	s.logger.InfoContext(ctx, "processing pending issuance jobs", "count", len(pending))

	var wg sync.WaitGroup
	for _, job := range pending {
		wg.Add(1)
		go func(job *model.IssueJob) {
			defer wg.Done()
			if s.sem != nil {
				if err := s.sem.Acquire(ctx, 1); err != nil {
					s.logger.WarnContext(ctx, "issuance canceled before dispatch",
						"job_id", job.ID, "error", err)
					return
				}
				defer s.sem.Release(1)
			}
			s.processJob(ctx, job)
		}(job)
	}
	wg.Wait()

	return len(pending), nil
}

// processJob performs one issuance attempt and records its outcome. The log
// insert and status transition are atomic in the repository; if that
// transaction fails the job stays pending and is retried next run.
func (s *IssuerService) processJob(ctx context.Context, job *model.IssueJob) {
	resp := s.client.Issue(ctx, job.Payload)
	transition := s.classify(resp, job.RetryCount)

	err := s.jobs.RecordAttempt(ctx, core.RecordAttemptParams{
		JobID:      job.ID,
		Payload:    job.Payload,
		Response:   resp,
		Transition: transition,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "record issuance attempt failed",
			"job_id", job.ID, "error", err)
		return
	}

	s.invalidateStatus(ctx, job)

	s.logger.InfoContext(ctx, "issuance attempt settled",
		"job_id", job.ID,
		"status", transition.Status,
		"response_code", resp.StatusCode,
		"retry_count", job.RetryCount)
}

// classify maps an attempt outcome onto the job state machine:
//
//	200             → success
//	500 / transport → pending with retry bump until the ceiling, then failed
//	anything else   → failed (definitive rejection, no retry)
//
// The retry bump on the exhausting attempt is deliberate: the terminal
// failed row shows retries exhausted.
func (s *IssuerService) classify(resp model.AttemptResponse, retryCount int) core.JobTransition {
	switch {
	case resp.StatusCode == http.StatusOK:
		return core.JobTransition{Status: model.JobStatusSuccess}
	case resp.StatusCode == http.StatusInternalServerError:
		if retryCount < s.maxRetries {
			return core.JobTransition{Status: model.JobStatusPending, IncrementRetry: true}
		}
		return core.JobTransition{Status: model.JobStatusFailed, IncrementRetry: true}
	case s.duplicates.IsDuplicateSuccess(resp):
		return core.JobTransition{Status: model.JobStatusSuccess}
	default:
		return core.JobTransition{Status: model.JobStatusFailed}
	}
}

func (s *IssuerService) invalidateStatus(ctx context.Context, job *model.IssueJob) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, job.UserID, job.ListingID); err != nil {
		s.logger.WarnContext(ctx, "invalidate issue status cache failed",
			"job_id", job.ID, "error", err)
	}
}
