// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/jianjin/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// NextRunTime returns the next activation of schedule after from.
func NextRunTime(schedule string, from time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}

// Enqueuer hands a task to the background queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// TagCleanupScheduler enqueues the orphan tag sweep on a cron schedule.
// Without a queue the sweep runs inline on the cron goroutine.
type TagCleanupScheduler struct {
	schedule string
	queue    Enqueuer
	cleaner  tasks.OrphanTagsCleaner

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewTagCleanupScheduler creates a scheduler. queue may be nil.
func NewTagCleanupScheduler(schedule string, queue Enqueuer, cleaner tasks.OrphanTagsCleaner) *TagCleanupScheduler {
	return &TagCleanupScheduler{
		schedule: schedule,
		queue:    queue,
		cleaner:  cleaner,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the job and starts the cron loop. It stops when ctx is done.
func (s *TagCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.run(context.Background(), "schedule")
	}); err != nil {
		return fmt.Errorf("failed to schedule tag cleanup job: %w", err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("Tag cleanup scheduler: started with schedule '%s'. Next run: %v", s.schedule, nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *TagCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Tag cleanup scheduler: stopped")
}

// RunNow triggers one sweep immediately.
func (s *TagCleanupScheduler) RunNow(ctx context.Context) error {
	return s.run(ctx, "manual")
}

// IsRunning returns whether the scheduler is active.
func (s *TagCleanupScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *TagCleanupScheduler) run(ctx context.Context, trigger string) error {
	if s.queue != nil {
		id, err := s.queue.Enqueue(ctx, tasks.CleanupOrphanTagsTask{Trigger: trigger})
		if err != nil {
			log.Printf("Tag cleanup scheduler: failed to enqueue: %v", err)
			return err
		}
		log.Printf("Tag cleanup scheduler: enqueued task %s", id)
		return nil
	}

	deleted, err := tasks.CleanupOrphanTags(s.cleaner)
	if err != nil {
		log.Printf("Tag cleanup scheduler: sweep failed: %v", err)
		return err
	}
	log.Printf("Tag cleanup scheduler: removed %d orphan tags", deleted)
	return nil
}
