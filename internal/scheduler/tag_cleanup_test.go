package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/jianjin/internal/tasks"
)

type recordingQueue struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (q *recordingQueue) Enqueue(ctx context.Context, task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, task)
	return "task-1", nil
}

type countingCleaner struct {
	orphans int64
	deletes int
}

func (c *countingCleaner) CountOrphanTags() (int64, error) { return c.orphans, nil }

func (c *countingCleaner) DeleteOrphanTags() (int64, error) {
	c.deletes++
	return c.orphans, nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("15 * * * *"))
	assert.NoError(t, ValidateCronSchedule("0 3 * * 1"))
	assert.Error(t, ValidateCronSchedule("every hour"))
	assert.Error(t, ValidateCronSchedule("0 * * * * *"))
}

func TestNextRunTime(t *testing.T) {
	from := time.Date(2024, 5, 1, 10, 20, 0, 0, time.UTC)
	next, err := NextRunTime("15 * * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 15, 0, 0, time.UTC), next)
}

func TestTagCleanupScheduler_RunNowEnqueues(t *testing.T) {
	queue := &recordingQueue{}
	s := NewTagCleanupScheduler("15 * * * *", queue, nil)

	require.NoError(t, s.RunNow(context.Background()))
	require.Len(t, queue.tasks, 1)
	assert.Equal(t, tasks.CleanupOrphanTagsTask{Trigger: "manual"}, queue.tasks[0])
}

func TestTagCleanupScheduler_RunNowEnqueueError(t *testing.T) {
	boom := errors.New("queue closed")
	s := NewTagCleanupScheduler("15 * * * *", &recordingQueue{err: boom}, nil)

	assert.ErrorIs(t, s.RunNow(context.Background()), boom)
}

func TestTagCleanupScheduler_RunsInlineWithoutQueue(t *testing.T) {
	cleaner := &countingCleaner{orphans: 3}
	s := NewTagCleanupScheduler("15 * * * *", nil, cleaner)

	require.NoError(t, s.RunNow(context.Background()))
	assert.Equal(t, 1, cleaner.deletes)
}

func TestTagCleanupScheduler_StartStop(t *testing.T) {
	s := NewTagCleanupScheduler("15 * * * *", &recordingQueue{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	require.NoError(t, s.Start(ctx), "second start is a no-op")

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestTagCleanupScheduler_StopsWithContext(t *testing.T) {
	s := NewTagCleanupScheduler("15 * * * *", &recordingQueue{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestTagCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewTagCleanupScheduler("not a schedule", &recordingQueue{}, nil)

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}
