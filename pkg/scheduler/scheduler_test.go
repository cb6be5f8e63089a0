package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopscan/pkg/config"
)

func TestNewRejectsInvalidCron(t *testing.T) {
	_, err := New(&config.ScheduleConfig{Cron: "every day"}, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, config.ErrInvalidCron)

	_, err = New(nil, nil)
	assert.ErrorIs(t, err, config.ErrScheduleConfig)
}

func TestRunNowRecordsState(t *testing.T) {
	calls := 0
	s, err := New(&config.ScheduleConfig{Cron: "0 4 * * *"}, func(context.Context) error {
		calls++
		if calls == 2 {
			return errors.New("navigation timeout")
		}
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.RunNow(context.Background()))
	assert.Equal(t, JobStatusCompleted, s.State().Status)

	assert.Error(t, s.RunNow(context.Background()))
	state := s.State()
	assert.Equal(t, JobStatusFailed, state.Status)
	assert.Equal(t, "navigation timeout", state.LastError)
	assert.Equal(t, 2, state.Runs)
}

func TestRunsNeverOverlap(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	s, err := New(&config.ScheduleConfig{Cron: "0 4 * * *"}, func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.RunNow(context.Background()) }()
	<-started

	assert.ErrorIs(t, s.RunNow(context.Background()), ErrAlreadyRunning)
	assert.Equal(t, 1, s.State().Skipped)

	close(release)
	require.NoError(t, <-done)
}

func TestStartRunsOnStartAndStops(t *testing.T) {
	var calls atomic.Int32
	s, err := New(&config.ScheduleConfig{Cron: "0 4 * * *", RunOnStart: true}, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.False(t, s.State().NextRun.IsZero())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
