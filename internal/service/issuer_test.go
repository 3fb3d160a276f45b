package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/credkit/issuerd/internal/core"
	"github.com/credkit/issuerd/internal/domain/model"
	"github.com/credkit/issuerd/internal/mocks"
)

func pendingJob(retryCount int) *model.IssueJob {
	return &model.IssueJob{
		ID:         uuid.NewString(),
		UserID:     uuid.NewString(),
		ListingID:  uuid.NewString(),
		Payload:    json.RawMessage(`{"issuerRefId":"ref-1"}`),
		Status:     model.JobStatusPending,
		RetryCount: retryCount,
	}
}

func TestNewIssuerServiceValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := NewIssuerService(IssuerServiceOptions{Client: mocks.NewMockIssuerClient(ctrl)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job repository")

	_, err = NewIssuerService(IssuerServiceOptions{Jobs: mocks.NewMockIssueJobRepository(ctrl)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issuer client")
}

func TestIssuerServiceRunEmptyQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockIssueJobRepository(ctrl)
	client := mocks.NewMockIssuerClient(ctrl)
	repo.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	svc, err := NewIssuerService(IssuerServiceOptions{Jobs: repo, Client: client})
	require.NoError(t, err)

	processed, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestIssuerServiceRunListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockIssueJobRepository(ctrl)
	client := mocks.NewMockIssuerClient(ctrl)
	repo.EXPECT().ListPending(gomock.Any()).Return(nil, errors.New("db down"))

	svc, err := NewIssuerService(IssuerServiceOptions{Jobs: repo, Client: client})
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestIssuerServiceTransitions(t *testing.T) {
	tests := []struct {
		name           string
		retryCount     int
		response       model.AttemptResponse
		wantStatus     model.JobStatus
		wantIncrement  bool
		treatDuplicate bool
	}{
		{
			name:       "200 settles success",
			response:   model.AttemptResponse{StatusCode: http.StatusOK, StatusText: "OK"},
			wantStatus: model.JobStatusSuccess,
		},
		{
			name:          "500 under retry ceiling stays pending",
			retryCount:    0,
			response:      model.AttemptResponse{StatusCode: http.StatusInternalServerError},
			wantStatus:    model.JobStatusPending,
			wantIncrement: true,
		},
		{
			name:          "500 at retry ceiling fails with final bump",
			retryCount:    DefaultMaxRetries,
			response:      model.AttemptResponse{StatusCode: http.StatusInternalServerError},
			wantStatus:    model.JobStatusFailed,
			wantIncrement: true,
		},
		{
			name:       "404 is a definitive failure",
			response:   model.AttemptResponse{StatusCode: http.StatusNotFound},
			wantStatus: model.JobStatusFailed,
		},
		{
			name:       "plain 400 is a definitive failure",
			response:   model.AttemptResponse{StatusCode: http.StatusBadRequest, Body: json.RawMessage(`{"error":{"code":"bad_payload"}}`)},
			wantStatus: model.JobStatusFailed,
		},
		{
			name:           "duplicate 400 counts as success when policy says so",
			response:       model.AttemptResponse{StatusCode: http.StatusBadRequest, Body: json.RawMessage(`{"error":{"code":"duplicate_issuance"}}`)},
			wantStatus:     model.JobStatusSuccess,
			treatDuplicate: true,
		},
		{
			name:       "duplicate 400 still fails when policy is off",
			response:   model.AttemptResponse{StatusCode: http.StatusBadRequest, Body: json.RawMessage(`{"error":{"code":"duplicate_issuance"}}`)},
			wantStatus: model.JobStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			job := pendingJob(tt.retryCount)

			repo := mocks.NewMockIssueJobRepository(ctrl)
			client := mocks.NewMockIssuerClient(ctrl)

			repo.EXPECT().ListPending(gomock.Any()).Return([]*model.IssueJob{job}, nil)
			client.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(tt.response)
			repo.EXPECT().
				RecordAttempt(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params core.RecordAttemptParams) error {
					assert.Equal(t, job.ID, params.JobID)
					assert.Equal(t, tt.wantStatus, params.Transition.Status)
					assert.Equal(t, tt.wantIncrement, params.Transition.IncrementRetry)
					assert.Equal(t, tt.response.StatusCode, params.Response.StatusCode)
					return nil
				})

			duplicates, err := NewDuplicateMatcher(tt.treatDuplicate, "error.code", "duplicate_issuance")
			require.NoError(t, err)

			svc, err := NewIssuerService(IssuerServiceOptions{
				Jobs:       repo,
				Client:     client,
				Duplicates: duplicates,
			})
			require.NoError(t, err)

			processed, err := svc.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, processed)
		})
	}
}

func TestIssuerServiceJobsSettleIndependently(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jobOK := pendingJob(0)
	jobBroken := pendingJob(0)

	repo := mocks.NewMockIssueJobRepository(ctrl)
	client := mocks.NewMockIssuerClient(ctrl)

	repo.EXPECT().ListPending(gomock.Any()).Return([]*model.IssueJob{jobOK, jobBroken}, nil)
	client.EXPECT().
		Issue(gomock.Any(), gomock.Any()).
		Return(model.AttemptResponse{StatusCode: http.StatusOK}).
		Times(2)

	var mu sync.Mutex
	recorded := map[string]model.JobStatus{}
	repo.EXPECT().
		RecordAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.RecordAttemptParams) error {
			mu.Lock()
			defer mu.Unlock()
			recorded[params.JobID] = params.Transition.Status
			if params.JobID == jobBroken.ID {
				return errors.New("tx aborted")
			}
			return nil
		}).
		Times(2)

	svc, err := NewIssuerService(IssuerServiceOptions{Jobs: repo, Client: client})
	require.NoError(t, err)

	processed, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Equal(t, model.JobStatusSuccess, recorded[jobOK.ID])
	assert.Len(t, recorded, 2)
}

func TestIssuerServiceBoundedInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jobs := []*model.IssueJob{pendingJob(0), pendingJob(0), pendingJob(0), pendingJob(0)}

	repo := mocks.NewMockIssueJobRepository(ctrl)
	client := mocks.NewMockIssuerClient(ctrl)

	var mu sync.Mutex
	inFlight, maxSeen := 0, 0

	repo.EXPECT().ListPending(gomock.Any()).Return(jobs, nil)
	client.EXPECT().
		Issue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, json.RawMessage) model.AttemptResponse {
			mu.Lock()
			inFlight++
			if inFlight > maxSeen {
				maxSeen = inFlight
			}
			mu.Unlock()

			mu.Lock()
			inFlight--
			mu.Unlock()
			return model.AttemptResponse{StatusCode: http.StatusOK}
		}).
		Times(len(jobs))
	repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil).Times(len(jobs))

	svc, err := NewIssuerService(IssuerServiceOptions{
		Jobs:        repo,
		Client:      client,
		MaxInFlight: 1,
	})
	require.NoError(t, err)

	processed, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(jobs), processed)
	assert.LessOrEqual(t, maxSeen, 1)
}

func TestIssuerServiceInvalidatesStatusCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	job := pendingJob(0)

	repo := mocks.NewMockIssueJobRepository(ctrl)
	client := mocks.NewMockIssuerClient(ctrl)
	cache := mocks.NewMockStatusCacheRepository(ctrl)

	repo.EXPECT().ListPending(gomock.Any()).Return([]*model.IssueJob{job}, nil)
	client.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(model.AttemptResponse{StatusCode: http.StatusOK})
	repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil)
	cache.EXPECT().Invalidate(gomock.Any(), job.UserID, job.ListingID).Return(nil)

	svc, err := NewIssuerService(IssuerServiceOptions{
		Jobs:        repo,
		Client:      client,
		StatusCache: cache,
	})
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	require.NoError(t, err)
}
