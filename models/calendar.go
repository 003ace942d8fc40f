package models

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeMeeting  EventType = "meeting"
	EventTypeDeadline EventType = "deadline"
	EventTypeReminder EventType = "reminder"
	EventTypeBlock    EventType = "block"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// CalendarEvent represents a calendar event
type CalendarEvent struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	AllDay       bool        `json:"all_day"`
	Type         EventType   `json:"type"`
	Location     string      `json:"location,omitempty"`
	Participants []uuid.UUID `json:"participants,omitempty"`
	ProjectID    *uuid.UUID  `json:"project_id,omitempty"`
	TeamID       *uuid.UUID  `json:"team_id,omitempty"`
	TaskID       *uuid.UUID  `json:"task_id,omitempty"`
	Priority     Priority    `json:"priority"`
	Status       EventStatus `json:"status"`
	Reminders    []Reminder  `json:"reminders,omitempty"`
	Recurrence   string      `json:"recurrence,omitempty"` // iCalendar RRULE format
	CreatedBy    uuid.UUID   `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Reminder fires once, Minutes before the event start.
type Reminder struct {
	ID        uuid.UUID `json:"id"`
	Minutes   int       `json:"minutes"`
	Triggered bool      `json:"triggered"`
}

// HasParticipant reports whether userID is listed on the event.
func (e *CalendarEvent) HasParticipant(userID uuid.UUID) bool {
	for _, p := range e.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
