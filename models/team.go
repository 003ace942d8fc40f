package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamStatus string

const (
	TeamStatusActive   TeamStatus = "active"
	TeamStatusInactive TeamStatus = "inactive"
	TeamStatusArchived TeamStatus = "archived"
)

type TeamRole string

const (
	TeamRoleLeader TeamRole = "leader"
	TeamRoleMember TeamRole = "member"
)

type Team struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Objective      string          `json:"objective"`
	Status         TeamStatus      `json:"status"`
	Color          string          `json:"color"`
	LeaderID       uuid.UUID       `json:"leader_id"`
	Members        []TeamMember    `json:"members"`
	ProjectIDs     []uuid.UUID     `json:"projects,omitempty"`
	RecentActivity []ActivityEntry `json:"recent_activity,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      uuid.UUID       `json:"created_by"`
}

type TeamMember struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Role       TeamRole  `json:"role"`
	JoinedAt   time.Time `json:"joined_at"`
	TasksCount int       `json:"tasks_count"`
}

// ActivityEntry is a line in a team's recent-activity feed.
type ActivityEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether userID appears in the member list.
func (t *Team) HasMember(userID uuid.UUID) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
