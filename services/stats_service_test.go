package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"planejaplus/models"
)

func taskFor(projectID *uuid.UUID, status models.TaskStatus) models.Task {
	return models.Task{ID: uuid.New(), ProjectID: projectID, Status: status}
}

func TestComputeProjectStats(t *testing.T) {
	projectID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name  string
		tasks []models.Task
		want  models.ProjectStats
	}{
		{
			name:  "no tasks",
			tasks: nil,
			want:  models.ProjectStats{},
		},
		{
			name: "none completed",
			tasks: []models.Task{
				taskFor(&projectID, models.TaskStatusPending),
				taskFor(&projectID, models.TaskStatusInProgress),
			},
			want: models.ProjectStats{TasksCount: 2, CompletedTasks: 0, Progress: 0},
		},
		{
			name: "all completed",
			tasks: []models.Task{
				taskFor(&projectID, models.TaskStatusCompleted),
			},
			want: models.ProjectStats{TasksCount: 1, CompletedTasks: 1, Progress: 100},
		},
		{
			name: "rounds to nearest",
			tasks: []models.Task{
				taskFor(&projectID, models.TaskStatusCompleted),
				taskFor(&projectID, models.TaskStatusPending),
				taskFor(&projectID, models.TaskStatusPending),
			},
			want: models.ProjectStats{TasksCount: 3, CompletedTasks: 1, Progress: 33},
		},
		{
			name: "rounds up",
			tasks: []models.Task{
				taskFor(&projectID, models.TaskStatusCompleted),
				taskFor(&projectID, models.TaskStatusCompleted),
				taskFor(&projectID, models.TaskStatusPending),
			},
			want: models.ProjectStats{TasksCount: 3, CompletedTasks: 2, Progress: 67},
		},
		{
			name: "ignores other projects and independent tasks",
			tasks: []models.Task{
				taskFor(&projectID, models.TaskStatusCompleted),
				taskFor(&otherID, models.TaskStatusPending),
				taskFor(nil, models.TaskStatusPending),
			},
			want: models.ProjectStats{TasksCount: 1, CompletedTasks: 1, Progress: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProjectStats(tt.tasks, projectID))
		})
	}
}
