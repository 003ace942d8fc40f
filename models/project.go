package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusArchived  ProjectStatus = "archived"
)

type Project struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	CreatedBy   uuid.UUID     `json:"created_by"`
	TeamIDs     []uuid.UUID   `json:"team,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`

	// Derived from the task collection, never authoritative. Repaired by
	// the store after every task mutation that touches this project.
	Progress       int `json:"progress"`
	TasksCount     int `json:"tasks_count"`
	CompletedTasks int `json:"completed_tasks"`
}

// ProjectStats is the recomputed view of a project's derived fields.
type ProjectStats struct {
	TasksCount     int `json:"tasks_count"`
	CompletedTasks int `json:"completed_tasks"`
	Progress       int `json:"progress"`
}
