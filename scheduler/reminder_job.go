package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"planejaplus/config"
	"planejaplus/logger"
	"planejaplus/models"
	"planejaplus/services"
	"planejaplus/utils"
)

// ReminderJob periodically scans the active user's calendar for due
// reminders and pushes a notification for each one.
type ReminderJob struct {
	auth     *services.AuthService
	registry *services.Registry
	hub      *utils.Hub
	pool     *ants.Pool
	config   *config.Config
}

func NewReminderJob(auth *services.AuthService, registry *services.Registry, hub *utils.Hub, pool *ants.Pool, cfg *config.Config) *ReminderJob {
	return &ReminderJob{
		auth:     auth,
		registry: registry,
		hub:      hub,
		pool:     pool,
		config:   cfg,
	}
}

// GetName returns the job name.
func (j *ReminderJob) GetName() string {
	return "calendar_reminder_checker"
}

// GetSchedule returns the job schedule.
func (j *ReminderJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.config.ReminderInterval)
}

// Execute runs one reminder scan for the current session identity.
func (j *ReminderJob) Execute() {
	user, ok := j.auth.CurrentUser()
	if !ok {
		return
	}

	calendar := j.registry.Calendar(user.ID)
	alerts := calendar.CheckReminders(time.Now())
	if len(alerts) == 0 {
		return
	}
	logger.Info("triggering %d reminder(s) for %s", len(alerts), user.Email)

	for _, alert := range alerts {
		alert := alert
		err := j.pool.Submit(func() {
			j.hub.SendToUser(user.ID, reminderNotification(user.ID, alert))
		})
		if err != nil {
			logger.Warn("failed to dispatch reminder notification: %v", err)
		}
	}
}

func reminderNotification(userID uuid.UUID, alert services.ReminderAlert) models.Notification {
	content := fmt.Sprintf("%q starts at %s", alert.Event.Title, alert.Event.StartDate.Format("15:04"))
	if alert.Reminder.Minutes > 0 {
		content = fmt.Sprintf("%q starts in %d minutes", alert.Event.Title, alert.Reminder.Minutes)
	}

	return models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Reminder: " + alert.Event.Title,
		Content:   content,
		Type:      "reminder",
		CreatedAt: time.Now(),
	}
}
