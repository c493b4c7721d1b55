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

func TestAddJobRejectsBadSpec(t *testing.T) {
	s := New(time.Second)
	err := s.AddJob("sync", "not a cron", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestAddJobRejectsDuplicateName(t *testing.T) {
	s := New(time.Second)
	job := func(context.Context) error { return nil }

	require.NoError(t, s.AddJob("sync", "@every 1h", job))
	assert.Error(t, s.AddJob("sync", "@every 2h", job))

	next, ok := s.Next("sync")
	assert.True(t, ok)
	assert.True(t, next.IsZero(), "entries are not scheduled before Start")

	_, ok = s.Next("missing")
	assert.False(t, ok)
}

func TestRunNowAppliesTimeout(t *testing.T) {
	s := New(20 * time.Millisecond)

	err := s.RunNow(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestScheduledJobRuns(t *testing.T) {
	s := New(time.Second)
	var runs atomic.Int32
	require.NoError(t, s.AddJob("tick", "@every 1s", func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	require.NoError(t, s.Start())
	assert.Error(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
