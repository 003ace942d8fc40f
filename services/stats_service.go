package services

import (
	"math"

	"github.com/google/uuid"

	"planejaplus/models"
)

// ComputeProjectStats recomputes a project's derived fields from a task
// set. It is pure: callers pass the post-mutation task collection and apply
// the result themselves. Tasks without a project never reach this function.
func ComputeProjectStats(tasks []models.Task, projectID uuid.UUID) models.ProjectStats {
	var total, completed int
	for _, t := range tasks {
		if t.ProjectID == nil || *t.ProjectID != projectID {
			continue
		}
		total++
		if t.Status == models.TaskStatusCompleted {
			completed++
		}
	}

	progress := 0
	if total > 0 {
		progress = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return models.ProjectStats{
		TasksCount:     total,
		CompletedTasks: completed,
		Progress:       progress,
	}
}
