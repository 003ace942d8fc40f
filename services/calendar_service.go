package services

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"planejaplus/logger"
	"planejaplus/models"
	"planejaplus/storage"
)

var (
	ErrEventNotFound    = errors.New("calendar event not found")
	ErrInvalidTimeRange = errors.New("event end must be after start")
)

// CalendarService owns the calendar event collection of one user, persisted
// as a single JSON blob under the user's calendar key.
type CalendarService struct {
	mu        sync.RWMutex
	store     *storage.Store
	namespace string
	userID    uuid.UUID
	events    []models.CalendarEvent
}

func NewCalendarService(store *storage.Store, namespace string, userID uuid.UUID) *CalendarService {
	s := &CalendarService{
		store:     store,
		namespace: namespace,
		userID:    userID,
	}
	s.load()
	return s
}

func (s *CalendarService) calendarKey() string {
	return storage.CalendarKey(s.namespace, s.userID.String())
}

func (s *CalendarService) load() {
	raw, ok, err := s.store.Get(s.calendarKey())
	if err != nil {
		logger.Warn("failed to read calendar for %s: %v", s.userID, err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, &s.events); err != nil {
		logger.Warn("corrupt calendar for %s, starting empty: %v", s.userID, err)
		s.events = nil
	}
}

func (s *CalendarService) persist() {
	raw, err := json.Marshal(s.events)
	if err != nil {
		logger.Error("failed to serialize calendar for %s: %v", s.userID, err)
		return
	}
	if err := s.store.Put(s.calendarKey(), raw); err != nil {
		logger.Error("failed to save calendar for %s: %v", s.userID, err)
	}
}

type EventInput struct {
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	AllDay       bool
	Type         models.EventType
	Location     string
	Participants []uuid.UUID
	ProjectID    *uuid.UUID
	TeamID       *uuid.UUID
	TaskID       *uuid.UUID
	Priority     models.Priority
	Reminders    []int // minutes before start
	Recurrence   string
}

// CreateEvent validates the time range, stamps ownership and timestamps,
// and appends the event.
func (s *CalendarService) CreateEvent(in EventInput) (models.CalendarEvent, error) {
	if !in.EndDate.After(in.StartDate) {
		return models.CalendarEvent{}, ErrInvalidTimeRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	eventType := in.Type
	if eventType == "" {
		eventType = models.EventTypeMeeting
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	reminders := make([]models.Reminder, 0, len(in.Reminders))
	for _, minutes := range in.Reminders {
		reminders = append(reminders, models.Reminder{ID: uuid.New(), Minutes: minutes})
	}

	now := time.Now()
	event := models.CalendarEvent{
		ID:           uuid.New(),
		Title:        in.Title,
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		AllDay:       in.AllDay,
		Type:         eventType,
		Location:     in.Location,
		Participants: in.Participants,
		ProjectID:    in.ProjectID,
		TeamID:       in.TeamID,
		TaskID:       in.TaskID,
		Priority:     priority,
		Status:       models.EventStatusScheduled,
		Reminders:    reminders,
		Recurrence:   in.Recurrence,
		CreatedBy:    s.userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.events = append(s.events, event)
	s.persist()
	return event, nil
}

type EventPatch struct {
	Title        *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	AllDay       *bool
	Type         *models.EventType
	Location     *string
	Participants *[]uuid.UUID
	ProjectID    *uuid.UUID
	TeamID       *uuid.UUID
	TaskID       *uuid.UUID
	Priority     *models.Priority
	Status       *models.EventStatus
	Recurrence   *string
}

// UpdateEvent merges the patch and bumps UpdatedAt. The time range is not
// revalidated here; edit validation belongs to the caller.
func (s *CalendarService) UpdateEvent(id uuid.UUID, patch EventPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID != id {
			continue
		}
		e := &s.events[i]
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.StartDate != nil {
			e.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			e.EndDate = *patch.EndDate
		}
		if patch.AllDay != nil {
			e.AllDay = *patch.AllDay
		}
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		if patch.Location != nil {
			e.Location = *patch.Location
		}
		if patch.Participants != nil {
			e.Participants = *patch.Participants
		}
		if patch.ProjectID != nil {
			e.ProjectID = patch.ProjectID
		}
		if patch.TeamID != nil {
			e.TeamID = patch.TeamID
		}
		if patch.TaskID != nil {
			e.TaskID = patch.TaskID
		}
		if patch.Priority != nil {
			e.Priority = *patch.Priority
		}
		if patch.Status != nil {
			e.Status = *patch.Status
		}
		if patch.Recurrence != nil {
			e.Recurrence = *patch.Recurrence
		}
		e.UpdatedAt = time.Now()
		s.persist()
		return nil
	}
	return ErrEventNotFound
}

func (s *CalendarService) DeleteEvent(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.events[:0]
	removed := false
	for _, e := range s.events {
		if e.ID == id {
			removed = true
			continue
		}
		events = append(events, e)
	}
	if !removed {
		return ErrEventNotFound
	}
	s.events = events
	s.persist()
	return nil
}

func (s *CalendarService) Event(id uuid.UUID) (models.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.CalendarEvent{}, ErrEventNotFound
}

func (s *CalendarService) Events() []models.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CalendarEvent(nil), s.events...)
}

// EventFilter combines filter dimensions. An empty dimension places no
// restriction; within a dimension values are OR'ed, across dimensions the
// matches are AND'ed.
type EventFilter struct {
	Search       string
	ProjectIDs   []uuid.UUID
	TeamIDs      []uuid.UUID
	Participants []uuid.UUID
	Types        []models.EventType
	Priorities   []models.Priority
	MineOnly     bool
}

// FilteredEvents is a pure projection of the event collection.
func (s *CalendarService) FilteredEvents(filter EventFilter) []models.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var out []models.CalendarEvent
	for _, e := range s.events {
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.Description), search) {
			continue
		}
		if len(filter.ProjectIDs) > 0 && !refIn(e.ProjectID, filter.ProjectIDs) {
			continue
		}
		if len(filter.TeamIDs) > 0 && !refIn(e.TeamID, filter.TeamIDs) {
			continue
		}
		if len(filter.Participants) > 0 && !overlaps(e.Participants, filter.Participants) {
			continue
		}
		if len(filter.Types) > 0 && !in(filter.Types, e.Type) {
			continue
		}
		if len(filter.Priorities) > 0 && !in(filter.Priorities, e.Priority) {
			continue
		}
		if filter.MineOnly && !e.HasParticipant(s.userID) && e.CreatedBy != s.userID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// refIn reports whether a nullable reference matches any of the wanted ids.
// Events without a value for the dimension are excluded once the dimension
// is non-empty.
func refIn(ref *uuid.UUID, wanted []uuid.UUID) bool {
	if ref == nil {
		return false
	}
	for _, id := range wanted {
		if *ref == id {
			return true
		}
	}
	return false
}

func overlaps(a, b []uuid.UUID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func in[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// ReminderAlert is emitted when a reminder comes due.
type ReminderAlert struct {
	Event    models.CalendarEvent `json:"event"`
	Reminder models.Reminder      `json:"reminder"`
}

// CheckReminders scans every event for untriggered reminders whose lead
// time has passed while the event start has not. Triggered flags are
// persisted in the same scan so a reload cannot re-fire them.
func (s *CalendarService) CheckReminders(now time.Time) []ReminderAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	var alerts []ReminderAlert
	for i := range s.events {
		e := &s.events[i]
		for j := range e.Reminders {
			r := &e.Reminders[j]
			if r.Triggered {
				continue
			}
			fireAt := e.StartDate.Add(-time.Duration(r.Minutes) * time.Minute)
			if now.Before(fireAt) || !now.Before(e.StartDate) {
				continue
			}
			r.Triggered = true
			alerts = append(alerts, ReminderAlert{Event: *e, Reminder: *r})
		}
	}

	if len(alerts) > 0 {
		s.persist()
	}
	return alerts
}
