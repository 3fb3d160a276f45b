// Package data provides PostgreSQL-backed repositories for the issuance
// pipeline.
package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/credkit/issuerd/internal/core"
	"github.com/credkit/issuerd/internal/data/pgxutil"
	"github.com/credkit/issuerd/internal/domain/model"
	apperrors "github.com/credkit/issuerd/internal/errors"
)

// ErrJobNotFound is returned when a job is not found.
var ErrJobNotFound = errors.New("issuance job not found")

// RepoConfig holds configuration options for the issue job repository.
type RepoConfig struct {
	Logger       *slog.Logger
	TimeProvider TimeProvider
}

// IssueJobRepo provides database operations for the issuance job queue and
// its attempt log.
type IssueJobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewIssueJobRepo creates a new IssueJobRepo with the given database
// connection and configuration.
func NewIssueJobRepo(db *sql.DB, cfg RepoConfig) *IssueJobRepo {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IssueJobRepo{DB: db, timeProvider: tp, logger: logger}
}

const issueJobColumns = `
  id,
  user_id,
  listing_id,
  payload,
  status,
  retry_count,
  created_at,
  updated_at
`

// CreateBatch inserts the given jobs as pending rows in a single statement.
// The insert is atomic: either every job row lands or none do.
func (r *IssueJobRepo) CreateBatch(
	ctx context.Context,
	reqs []model.CreateJobRequest,
) ([]*model.IssueJob, error) {
	if len(reqs) == 0 {
		return nil, errors.New("at least one job is required")
	}
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "job %d", i)
		}
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO vc_issue_jobs (user_id, listing_id, payload) VALUES `)
	args := make([]any, 0, len(reqs)*3)
	for i, req := range reqs {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 3
		fmt.Fprintf(&sb, "($%d, $%d, $%d)", base+1, base+2, base+3)
		args = append(args, req.UserID, req.ListingID, req.Payload)
	}
	sb.WriteString(` RETURNING ` + issueJobColumns)

	var jobs []*model.IssueJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, sb.String(), args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.IssueJob])
		if err != nil {
			return err
		}
		for i := range collected {
			jobs = append(jobs, &collected[i])
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create issue jobs: %w", err))
	}

	r.logger.InfoContext(ctx, "issue jobs created",
		"count", len(jobs),
		"user_id", reqs[0].UserID,
		"listing_id", reqs[0].ListingID)
	return jobs, nil
}

// ListPending returns every job with status = pending. No ORDER BY: batch
// processing does not depend on ordering.
func (r *IssueJobRepo) ListPending(ctx context.Context) ([]*model.IssueJob, error) {
	query := `SELECT ` + issueJobColumns + ` FROM vc_issue_jobs WHERE status = 'pending'`

	var jobs []*model.IssueJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.IssueJob])
		if err != nil {
			return err
		}
		for i := range collected {
			jobs = append(jobs, &collected[i])
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list pending jobs: %w", err))
	}
	return jobs, nil
}

// GetByID fetches a single job by id.
func (r *IssueJobRepo) GetByID(ctx context.Context, id string) (*model.IssueJob, error) {
	query := `SELECT ` + issueJobColumns + ` FROM vc_issue_jobs WHERE id = $1`

	var job *model.IssueJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		collected, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.IssueJob])
		if err != nil {
			return err
		}
		job = &collected
		return nil
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get job: %w", err))
	}
	return job, nil
}

// RecordAttempt persists one issuance attempt: the log row and the job's
// status transition land in the same transaction, so the audit trail and
// queue state can never diverge. On any error the transaction rolls back
// and the job keeps its prior status.
func (r *IssueJobRepo) RecordAttempt(ctx context.Context, params core.RecordAttemptParams) error {
	if params.JobID == "" {
		return errors.New("job id is required")
	}
	if !params.Transition.Status.Valid() {
		return fmt.Errorf("invalid job status %q", params.Transition.Status)
	}

	responseJSON, err := json.Marshal(params.Response)
	if err != nil {
		return fmt.Errorf("marshal attempt response: %w", err)
	}

	retryDelta := 0
	if params.Transition.IncrementRetry {
		retryDelta = 1
	}

	txErr := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO vc_issue_job_logs (job_id, payload, response)
				VALUES ($1, $2, $3)`,
				params.JobID, params.Payload, responseJSON,
			); err != nil {
				return fmt.Errorf("insert job log: %w", err)
			}

			res, err := tx.ExecContext(ctx, `
				UPDATE vc_issue_jobs
				SET status = $2,
				    retry_count = retry_count + $3,
				    updated_at = now()
				WHERE id = $1`,
				params.JobID, params.Transition.Status, retryDelta,
			)
			if err != nil {
				return fmt.Errorf("update job status: %w", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if affected == 0 {
				return ErrJobNotFound
			}
			return nil
		},
	})
	if txErr != nil {
		return apperrors.MapDBError(fmt.Errorf("record attempt for job %s: %w", params.JobID, txErr))
	}

	r.logger.InfoContext(ctx, "issuance attempt recorded",
		"job_id", params.JobID,
		"status", params.Transition.Status,
		"response_code", params.Response.StatusCode)
	return nil
}

// StatusesForPair returns the statuses of all jobs for a (user, listing)
// pair, oldest first.
func (r *IssueJobRepo) StatusesForPair(
	ctx context.Context,
	userID, listingID string,
) ([]model.JobStatus, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT status FROM vc_issue_jobs
		WHERE user_id = $1 AND listing_id = $2
		ORDER BY created_at ASC`,
		userID, listingID)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("statuses for pair: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var statuses []model.JobStatus
	for rows.Next() {
		var s model.JobStatus
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return statuses, nil
}

// Stats returns job counts per lifecycle state.
func (r *IssueJobRepo) Stats(ctx context.Context) (*model.JobStats, error) {
	var stats model.JobStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'success'),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM vc_issue_jobs`).
		Scan(&stats.Pending, &stats.Success, &stats.Failed)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("job stats: %w", err))
	}
	return &stats, nil
}

// PruneSucceededLogs deletes up to limit attempt-log rows older than cutoff
// belonging to succeeded jobs. Failed jobs keep their full audit trail.
func (r *IssueJobRepo) PruneSucceededLogs(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) (int, error) {
	if limit < 1 {
		return 0, errors.New("limit must be positive")
	}
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM vc_issue_job_logs
		WHERE id IN (
			SELECT l.id
			FROM vc_issue_job_logs l
			JOIN vc_issue_jobs j ON j.id = l.job_id
			WHERE j.status = 'success' AND l.created_at < $1
			LIMIT $2
		)`,
		cutoff, limit)
	if err != nil {
		return 0, apperrors.MapDBError(fmt.Errorf("prune succeeded logs: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(affected), nil
}
