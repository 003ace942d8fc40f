package models

import (
	"time"

	"github.com/google/uuid"
)

// IndependentProject is the reserved project reference meaning the task
// belongs to no project. API clients may send it (or an empty string) in
// place of a project id; internally independence is a nil ProjectID.
const IndependentProject = "independent"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusInProgress  TaskStatus = "in-progress"
	TaskStatusUnderReview TaskStatus = "under-review"
	TaskStatusCompleted   TaskStatus = "completed"
	TaskStatusOverdue     TaskStatus = "overdue"
)

type Task struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ProjectID   *uuid.UUID  `json:"project_id,omitempty"`
	AssignedTo  []uuid.UUID `json:"assigned_to,omitempty"`
	Priority    Priority    `json:"priority"`
	Status      TaskStatus  `json:"status"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	CreatedBy   uuid.UUID   `json:"created_by"`
}
