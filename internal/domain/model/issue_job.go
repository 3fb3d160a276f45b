// Package model defines the core data types used throughout the issuerd
// credential-issuance pipeline.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle state of a credential-issuance job.
type JobStatus string

const (
	// JobStatusPending indicates a job is waiting to be issued (or re-issued
	// after a transient failure).
	JobStatusPending JobStatus = "pending"
	// JobStatusSuccess indicates the issuance endpoint accepted the credential.
	JobStatusSuccess JobStatus = "success"
	// JobStatusFailed indicates a definitive rejection or exhausted retries.
	JobStatusFailed JobStatus = "failed"
)

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	return s == JobStatusPending || s == JobStatusSuccess || s == JobStatusFailed
}

// Terminal returns true for states the worker never transitions out of.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSuccess || s == JobStatusFailed
}

// UnmarshalText implements encoding.TextUnmarshaler for JobStatus to allow env parsing.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := JobStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid JobStatus: %q", v)
	}
	*s = v
	return nil
}

// IssueJob is one unit of issuance work: a single credential for a single
// user, produced from a listing signup. Status is mutated only by the
// issuance worker; the payload is immutable after creation.
type IssueJob struct {
	ID         string          `json:"id"          db:"id"`
	UserID     string          `json:"user_id"     db:"user_id"`
	ListingID  string          `json:"listing_id"  db:"listing_id"`
	Payload    json.RawMessage `json:"payload"     db:"payload"`
	Status     JobStatus       `json:"status"      db:"status"`
	RetryCount int             `json:"retry_count" db:"retry_count"`
	CreatedAt  time.Time       `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"  db:"updated_at"`
}

// IssueJobLog is an append-only record of one issuance attempt. A retried
// job accumulates one row per attempt.
type IssueJobLog struct {
	ID        string          `json:"id"         db:"id"`
	JobID     string          `json:"job_id"     db:"job_id"`
	Payload   json.RawMessage `json:"payload"    db:"payload"`
	Response  json.RawMessage `json:"response"   db:"response"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// AttemptResponse is the captured outcome of one POST to the issuance
// endpoint, persisted verbatim in the job log.
type AttemptResponse struct {
	StatusCode int             `json:"status_code"`
	StatusText string          `json:"status_text"`
	Body       json.RawMessage `json:"body,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// CreateJobRequest describes one job row to insert. The payload builder
// produces a batch of these for a completed signup.
type CreateJobRequest struct {
	UserID    string          `json:"user_id"`
	ListingID string          `json:"listing_id"`
	Payload   json.RawMessage `json:"payload"`
}

// Validate validates the CreateJobRequest fields.
func (r *CreateJobRequest) Validate() error {
	if _, err := uuid.Parse(r.UserID); err != nil {
		return errors.New("user id must be a valid UUID")
	}
	if _, err := uuid.Parse(r.ListingID); err != nil {
		return errors.New("listing id must be a valid UUID")
	}
	if len(r.Payload) == 0 {
		return errors.New("payload is required")
	}
	return nil
}

// JobStats represents counts of jobs per lifecycle state.
type JobStats struct {
	Pending int `json:"pending"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// IssueStatus is the derived per-(user, listing) aggregate shown to admins
// and users. It is computed from the job rows for the pair, never stored.
type IssueStatus string

const (
	// IssueStatusPending means at least one job for the pair is still pending.
	IssueStatusPending IssueStatus = "pending"
	// IssueStatusFailed means no job is pending and at least one failed.
	IssueStatusFailed IssueStatus = "failed"
	// IssueStatusSuccess means every job for the pair succeeded.
	IssueStatusSuccess IssueStatus = "success"
	// IssueStatusNone means no issuance has ever been attempted for the pair.
	IssueStatusNone IssueStatus = ""
)

// AggregateIssueStatus folds a set of job statuses into the user-facing
// issue status: pending wins over failed, failed over success, and an empty
// set yields IssueStatusNone.
func AggregateIssueStatus(statuses []JobStatus) IssueStatus {
	if len(statuses) == 0 {
		return IssueStatusNone
	}
	agg := IssueStatusSuccess
	for _, s := range statuses {
		switch s {
		case JobStatusPending:
			return IssueStatusPending
		case JobStatusFailed:
			agg = IssueStatusFailed
		case JobStatusSuccess:
		}
	}
	return agg
}
