package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"planejaplus/models"
	"planejaplus/services"
	"planejaplus/utils"
)

type CalendarController struct {
	registry *services.Registry
}

func NewCalendarController(registry *services.Registry) *CalendarController {
	return &CalendarController{registry: registry}
}

func (c *CalendarController) calendar(ctx *gin.Context) (*services.CalendarService, bool) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return c.registry.Calendar(userID), true
}

// CreateEvent creates a new calendar event
func (c *CalendarController) CreateEvent(ctx *gin.Context) {
	var req struct {
		Title        string           `json:"title" binding:"required"`
		Description  string           `json:"description"`
		StartDate    time.Time        `json:"start_date" binding:"required"`
		EndDate      time.Time        `json:"end_date" binding:"required"`
		AllDay       bool             `json:"all_day"`
		Type         models.EventType `json:"type"`
		Location     string           `json:"location"`
		Participants []uuid.UUID      `json:"participants"`
		ProjectID    *uuid.UUID       `json:"project_id"`
		TeamID       *uuid.UUID       `json:"team_id"`
		TaskID       *uuid.UUID       `json:"task_id"`
		Priority     models.Priority  `json:"priority"`
		Reminders    []int            `json:"reminders"`
		Recurrence   string           `json:"recurrence"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	calendar, ok := c.calendar(ctx)
	if !ok {
		return
	}

	event, err := calendar.CreateEvent(services.EventInput{
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		AllDay:       req.AllDay,
		Type:         req.Type,
		Location:     req.Location,
		Participants: req.Participants,
		ProjectID:    req.ProjectID,
		TeamID:       req.TeamID,
		TaskID:       req.TaskID,
		Priority:     req.Priority,
		Reminders:    req.Reminders,
		Recurrence:   req.Recurrence,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimeRange) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "event end must be after start"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// GetEvents lists events, filtered by the query string
func (c *CalendarController) GetEvents(ctx *gin.Context) {
	calendar, ok := c.calendar(ctx)
	if !ok {
		return
	}

	filter := services.EventFilter{
		Search:   ctx.Query("search"),
		MineOnly: ctx.Query("mine") == "true",
	}

	var err error
	if filter.ProjectIDs, err = parseIDList(ctx.QueryArray("project_id")); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}
	if filter.TeamIDs, err = parseIDList(ctx.QueryArray("team_id")); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID"})
		return
	}
	if filter.Participants, err = parseIDList(ctx.QueryArray("participant")); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant ID"})
		return
	}
	for _, t := range ctx.QueryArray("type") {
		filter.Types = append(filter.Types, models.EventType(t))
	}
	for _, p := range ctx.QueryArray("priority") {
		filter.Priorities = append(filter.Priorities, models.Priority(p))
	}

	ctx.JSON(http.StatusOK, calendar.FilteredEvents(filter))
}

func parseIDList(values []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetEvent returns a single event
func (c *CalendarController) GetEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	calendar, ok := c.calendar(ctx)
	if !ok {
		return
	}

	event, err := calendar.Event(eventID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	ctx.JSON(http.StatusOK, event)
}

// UpdateEvent merges partial fields into an event
func (c *CalendarController) UpdateEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req struct {
		Title        *string             `json:"title"`
		Description  *string             `json:"description"`
		StartDate    *time.Time          `json:"start_date"`
		EndDate      *time.Time          `json:"end_date"`
		AllDay       *bool               `json:"all_day"`
		Type         *models.EventType   `json:"type"`
		Location     *string             `json:"location"`
		Participants *[]uuid.UUID        `json:"participants"`
		ProjectID    *uuid.UUID          `json:"project_id"`
		TeamID       *uuid.UUID          `json:"team_id"`
		TaskID       *uuid.UUID          `json:"task_id"`
		Priority     *models.Priority    `json:"priority"`
		Status       *models.EventStatus `json:"status"`
		Recurrence   *string             `json:"recurrence"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	calendar, ok := c.calendar(ctx)
	if !ok {
		return
	}

	err = calendar.UpdateEvent(eventID, services.EventPatch{
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		AllDay:       req.AllDay,
		Type:         req.Type,
		Location:     req.Location,
		Participants: req.Participants,
		ProjectID:    req.ProjectID,
		TeamID:       req.TeamID,
		TaskID:       req.TaskID,
		Priority:     req.Priority,
		Status:       req.Status,
		Recurrence:   req.Recurrence,
	})
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	event, _ := calendar.Event(eventID)
	ctx.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event
func (c *CalendarController) DeleteEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	calendar, ok := c.calendar(ctx)
	if !ok {
		return
	}

	if err := calendar.DeleteEvent(eventID); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
