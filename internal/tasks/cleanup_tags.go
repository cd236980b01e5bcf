package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// CleanupOrphanTagsQueue is the queue name of the orphan tag sweep.
const CleanupOrphanTagsQueue = "cleanup_orphan_tags"

// OrphanTagsCleaner provides the ability to delete orphan tags.
type OrphanTagsCleaner interface {
	CountOrphanTags() (int64, error)
	DeleteOrphanTags() (int64, error)
}

// CleanupOrphanTagsTask removes tags that are no longer attached to any word.
// Word writes already collect the tags they orphan; the sweep catches rows
// left behind by direct database edits or interrupted imports.
type CleanupOrphanTagsTask struct {
	Trigger string `json:"trigger"` // "schedule" or "manual"
}

// Config returns the queue configuration for cleanup tasks.
func (t CleanupOrphanTagsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        CleanupOrphanTagsQueue,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanTags runs one sweep and returns the number of deleted tags.
func CleanupOrphanTags(cleaner OrphanTagsCleaner) (int64, error) {
	if cleaner == nil {
		return 0, fmt.Errorf("orphan tags cleaner not configured")
	}

	orphans, err := cleaner.CountOrphanTags()
	if err != nil {
		return 0, fmt.Errorf("count orphan tags: %w", err)
	}
	if orphans == 0 {
		return 0, nil
	}

	deleted, err := cleaner.DeleteOrphanTags()
	if err != nil {
		return 0, fmt.Errorf("cleanup orphan tags: %w", err)
	}
	return deleted, nil
}

// CleanupOrphanTagsProcessor creates a processor function for CleanupOrphanTagsTask.
func CleanupOrphanTagsProcessor(cleaner OrphanTagsCleaner) backlite.QueueProcessor[CleanupOrphanTagsTask] {
	return func(ctx context.Context, task CleanupOrphanTagsTask) error {
		deleted, err := CleanupOrphanTags(cleaner)
		if err != nil {
			return err
		}

		log.Printf("[TASK] Cleaned up %d orphan tags (trigger: %s)", deleted, task.Trigger)
		return nil
	}
}

// NewCleanupOrphanTagsQueue creates a backlite queue for tag cleanup tasks.
func NewCleanupOrphanTagsQueue(cleaner OrphanTagsCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanTagsProcessor(cleaner))
}
