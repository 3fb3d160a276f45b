package reaper

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/credkit/issuerd/internal/mocks"
)

func TestNewRunnerRequiresJobs(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job repository")
}

func TestRunnerPrunesInBatchesUntilShortBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jobs := mocks.NewMockIssueJobRepository(ctrl)

	var mu sync.Mutex
	var batches []int
	done := make(chan struct{})

	// Two full batches then a short one ends the drain within one tick.
	results := []int{10, 10, 3}
	jobs.EXPECT().
		PruneSucceededLogs(gomock.Any(), gomock.Any(), 10).
		DoAndReturn(func(_ context.Context, cutoff time.Time, limit int) (int, error) {
			assert.True(t, cutoff.Before(time.Now()))
			mu.Lock()
			defer mu.Unlock()
			deleted := results[len(batches)]
			batches = append(batches, deleted)
			if len(batches) == len(results) {
				close(done)
			}
			return deleted, nil
		}).
		Times(len(results))

	runner, err := NewRunner(RunnerOptions{
		Jobs:      jobs,
		Interval:  time.Hour,
		Retention: 24 * time.Hour,
		BatchSize: 10,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)
	go func() { finished <- runner.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("prune batches did not complete")
	}

	cancel()
	select {
	case err := <-finished:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, results, batches)
}
