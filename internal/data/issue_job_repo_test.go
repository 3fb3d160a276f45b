package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credkit/issuerd/internal/core"
	"github.com/credkit/issuerd/internal/domain/model"
	"github.com/credkit/issuerd/internal/testutil"
)

func seedPair(t *testing.T, db *sql.DB) (string, string) {
	t.Helper()
	userID := testutil.InsertUser(t, db, testutil.UserFixture{})
	listingID := testutil.InsertListing(t, db, testutil.ListingFixture{})
	return userID, listingID
}

func newJobRequests(userID, listingID string, n int) []model.CreateJobRequest {
	reqs := make([]model.CreateJobRequest, 0, n)
	for i := 0; i < n; i++ {
		reqs = append(reqs, model.CreateJobRequest{
			UserID:    userID,
			ListingID: listingID,
			Payload:   json.RawMessage(`{"issuerRefId":"ref"}`),
		})
	}
	return reqs
}

func TestIssueJobRepoCreateBatchAndListPending(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewIssueJobRepo(db, RepoConfig{})
		userID, listingID := seedPair(t, db)

		jobs, err := repo.CreateBatch(ctx, newJobRequests(userID, listingID, 3))
		require.NoError(t, err)
		require.Len(t, jobs, 3)
		for _, job := range jobs {
			assert.NotEmpty(t, job.ID)
			assert.Equal(t, userID, job.UserID)
			assert.Equal(t, listingID, job.ListingID)
			assert.Equal(t, model.JobStatusPending, job.Status)
			assert.Zero(t, job.RetryCount)
			assert.False(t, job.CreatedAt.IsZero())
		}

		pending, err := repo.ListPending(ctx)
		require.NoError(t, err)
		assert.Len(t, pending, 3)
	})
}

func TestIssueJobRepoCreateBatchValidation(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewIssueJobRepo(db, RepoConfig{})

		_, err := repo.CreateBatch(ctx, nil)
		require.Error(t, err)

		_, err = repo.CreateBatch(ctx, []model.CreateJobRequest{{UserID: "nope"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "valid UUID")
	})
}

func TestIssueJobRepoGetByID(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewIssueJobRepo(db, RepoConfig{})
		userID, listingID := seedPair(t, db)

		created, err := repo.CreateBatch(ctx, newJobRequests(userID, listingID, 1))
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, created[0].ID)
		require.NoError(t, err)
		assert.Equal(t, created[0].ID, got.ID)
		assert.Equal(t, model.JobStatusPending, got.Status)

		_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrJobNotFound)
	})
}

func TestIssueJobRepoRecordAttempt(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewIssueJobRepo(db, RepoConfig{})
		userID, listingID := seedPair(t, db)

		created, err := repo.CreateBatch(ctx, newJobRequests(userID, listingID, 1))
		require.NoError(t, err)
		job := created[0]

		// Transient failure: stays pending, retry bumped, one log row.
		err = repo.RecordAttempt(ctx, core.RecordAttemptParams{
			JobID:   job.ID,
			Payload: job.Payload,
			Response: model.AttemptResponse{
				StatusCode: http.StatusInternalServerError,
				StatusText: "Internal Server Error",
			},
			Transition: core.JobTransition{Status: model.JobStatusPending, IncrementRetry: true},
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusPending, got.Status)
		assert.Equal(t, 1, got.RetryCount)

		// Success: terminal, no retry bump, second log row.
		err = repo.RecordAttempt(ctx, core.RecordAttemptParams{
			JobID:      job.ID,
			Payload:    job.Payload,
			Response:   model.AttemptResponse{StatusCode: http.StatusOK, StatusText: "OK"},
			Transition: core.JobTransition{Status: model.JobStatusSuccess},
		})
		require.NoError(t, err)

		got, err = repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusSuccess, got.Status)
		assert.Equal(t, 1, got.RetryCount)

		var logCount int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM vc_issue_job_logs WHERE job_id = $1`, job.ID).
			Scan(&logCount))
		assert.Equal(t, 2, logCount)
	})
}

func TestIssueJobRepoRecordAttemptUnknownJobRollsBack(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewIssueJobRepo(db, RepoConfig{})

		err := repo.RecordAttempt(ctx, core.RecordAttemptParams{
			JobID:      "00000000-0000-0000-0000-000000000000",
			Payload:    json.RawMessage(`{}`),
			Response:   model.AttemptResponse{StatusCode: http.StatusOK},
			Transition: core.JobTransition{Status: model.JobStatusSuccess},
		})
		require.Error(t, err)

		// The log insert from the failed transaction must not survive.
		var logCount int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM vc_issue_job_logs`).Scan(&logCount))
		assert.Zero(t, logCount)
	})
}

func TestIssueJobRepoRecordAttemptRejectsInvalidStatus(t *testing.T) {
	repo := NewIssueJobRepo(nil, RepoConfig{})

	err := repo.RecordAttempt(context.Background(), core.RecordAttemptParams{
		JobID:      "some-id",
		Transition: core.JobTransition{Status: model.JobStatus("running")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid job status")
}

func TestIssueJobRepoStatusesForPairAndStats(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewIssueJobRepo(db, RepoConfig{})
		userID, listingID := seedPair(t, db)
		otherUser, otherListing := seedPair(t, db)

		jobs, err := repo.CreateBatch(ctx, newJobRequests(userID, listingID, 2))
		require.NoError(t, err)
		_, err = repo.CreateBatch(ctx, newJobRequests(otherUser, otherListing, 1))
		require.NoError(t, err)

		err = repo.RecordAttempt(ctx, core.RecordAttemptParams{
			JobID:      jobs[0].ID,
			Payload:    jobs[0].Payload,
			Response:   model.AttemptResponse{StatusCode: http.StatusOK},
			Transition: core.JobTransition{Status: model.JobStatusSuccess},
		})
		require.NoError(t, err)

		statuses, err := repo.StatusesForPair(ctx, userID, listingID)
		require.NoError(t, err)
		assert.ElementsMatch(t,
			[]model.JobStatus{model.JobStatusSuccess, model.JobStatusPending},
			statuses)

		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Pending)
		assert.Equal(t, 1, stats.Success)
		assert.Zero(t, stats.Failed)
	})
}

func TestIssueJobRepoPruneSucceededLogs(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewIssueJobRepo(db, RepoConfig{})
		userID, listingID := seedPair(t, db)

		jobs, err := repo.CreateBatch(ctx, newJobRequests(userID, listingID, 2))
		require.NoError(t, err)
		succeeded, failed := jobs[0], jobs[1]

		transitions := []struct {
			job    *model.IssueJob
			status model.JobStatus
		}{
			{succeeded, model.JobStatusSuccess},
			{failed, model.JobStatusFailed},
		}
		for _, tr := range transitions {
			err = repo.RecordAttempt(ctx, core.RecordAttemptParams{
				JobID:      tr.job.ID,
				Payload:    tr.job.Payload,
				Response:   model.AttemptResponse{StatusCode: http.StatusOK},
				Transition: core.JobTransition{Status: tr.status},
			})
			require.NoError(t, err)
		}

		// Age every log row past the cutoff.
		_, err = db.ExecContext(ctx,
			`UPDATE vc_issue_job_logs SET created_at = now() - interval '60 days'`)
		require.NoError(t, err)

		deleted, err := repo.PruneSucceededLogs(ctx, time.Now().Add(-30*24*time.Hour), 100)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)

		// The failed job keeps its audit trail.
		var remaining int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM vc_issue_job_logs WHERE job_id = $1`, failed.ID).
			Scan(&remaining))
		assert.Equal(t, 1, remaining)

		_, err = repo.PruneSucceededLogs(ctx, time.Now(), 0)
		require.Error(t, err)
	})
}
