package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification represents a notification to a user
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"` // 'info', 'warning', 'reminder', etc.
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
