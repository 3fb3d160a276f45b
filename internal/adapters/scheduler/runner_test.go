package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	sweeps atomic.Int32
	limit  atomic.Int32
	err    error
}

func (s *countingSweeper) SweepUnenqueued(_ context.Context, limit int) (int, error) {
	s.sweeps.Add(1)
	s.limit.Store(int32(limit))
	if s.err != nil {
		return 0, s.err
	}
	return 1, nil
}

func TestNewRunnerRequiresSweeper(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweeper")
}

func TestRunnerSweepsImmediatelyAndOnTicks(t *testing.T) {
	sweeper := &countingSweeper{}
	runner, err := NewRunner(RunnerOptions{
		Sweeper:   sweeper,
		Interval:  10 * time.Millisecond,
		BatchSize: 25,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return sweeper.sweeps.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(25), sweeper.limit.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}

func TestRunnerKeepsTickingAfterSweepError(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("db down")}
	runner, err := NewRunner(RunnerOptions{
		Sweeper:  sweeper,
		Interval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = runner.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return sweeper.sweeps.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}
