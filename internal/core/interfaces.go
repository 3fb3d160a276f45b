// Package core defines the ports between the issuance services and their
// data and transport adapters.
package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/credkit/issuerd/internal/domain/model"
)

// ErrNoCompletedSignup is returned when no completed signup exists for a
// (user, listing) pair handed to the payload builder.
var ErrNoCompletedSignup = errors.New("no completed signup for user and listing")

// ErrMultipleCompletedSignups is returned when more than one completed
// signup exists for a (user, listing) pair. This indicates an upstream data
// integrity violation and is never retried.
var ErrMultipleCompletedSignups = errors.New("multiple completed signups for user and listing")

// JobTransition describes the status change the worker decided on after an
// issuance attempt.
type JobTransition struct {
	Status         model.JobStatus
	IncrementRetry bool
}

// RecordAttemptParams groups the writes that must land atomically after one
// issuance attempt: the log row and the job transition.
type RecordAttemptParams struct {
	JobID      string
	Payload    json.RawMessage
	Response   model.AttemptResponse
	Transition JobTransition
}

// IssueJobRepository is the persisted queue of issuance jobs plus the
// per-attempt audit log.
type IssueJobRepository interface {
	// CreateBatch inserts the given jobs as pending in a single statement.
	CreateBatch(ctx context.Context, reqs []model.CreateJobRequest) ([]*model.IssueJob, error)

	// ListPending returns every job with status = pending. Ordering is
	// whatever the database yields; callers must not depend on it.
	ListPending(ctx context.Context) ([]*model.IssueJob, error)

	// GetByID fetches a single job.
	GetByID(ctx context.Context, id string) (*model.IssueJob, error)

	// RecordAttempt inserts the attempt log row and applies the job
	// transition inside one transaction. On error nothing is persisted.
	RecordAttempt(ctx context.Context, params RecordAttemptParams) error

	// StatusesForPair returns the statuses of all jobs for a (user, listing)
	// pair, for the derived issue-status aggregate.
	StatusesForPair(ctx context.Context, userID, listingID string) ([]model.JobStatus, error)

	// Stats returns job counts per lifecycle state.
	Stats(ctx context.Context) (*model.JobStats, error)

	// PruneSucceededLogs deletes up to limit log rows older than cutoff that
	// belong to succeeded jobs. Returns the number of rows deleted.
	PruneSucceededLogs(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

// SignupRepository exposes the read-side views the payload builder consumes.
type SignupRepository interface {
	// CompletedSignup fetches the joined signup/listing/user record for the
	// pair. Returns ErrNoCompletedSignup or ErrMultipleCompletedSignups when
	// the pair does not resolve to exactly one completed signup.
	CompletedSignup(ctx context.Context, userID, listingID string) (*model.CompletedSignup, error)

	// EligibleTags returns the listing's non-archived tags with
	// can_issue_oca enabled.
	EligibleTags(ctx context.Context, listingID string) ([]model.IssueTag, error)

	// UnenqueuedCompletions returns up to limit completed signups on
	// auto-trigger listings that have no issuance jobs yet. The scheduler
	// sweeps these to catch completions recorded while no worker was up.
	UnenqueuedCompletions(ctx context.Context, limit int) ([]*model.CompletedSignup, error)
}

// StatusCacheRepository caches the derived issue status per (user, listing)
// pair. A miss returns (IssueStatusNone, false, nil).
type StatusCacheRepository interface {
	Get(ctx context.Context, userID, listingID string) (model.IssueStatus, bool, error)
	Set(ctx context.Context, userID, listingID string, status model.IssueStatus) error
	Invalidate(ctx context.Context, userID, listingID string) error
}

// IssuerClient posts one credential payload to the external issuance
// endpoint. Transport failures are folded into the response with a
// synthesized 500 status so every attempt yields a loggable outcome.
type IssuerClient interface {
	Issue(ctx context.Context, payload json.RawMessage) model.AttemptResponse
}

// IssuerRunner is the per-run entry point the scheduler ticks.
type IssuerRunner interface {
	// Run processes every currently pending job and returns the number of
	// jobs attempted.
	Run(ctx context.Context) (int, error)
}
