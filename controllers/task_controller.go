package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"planejaplus/models"
	"planejaplus/services"
	"planejaplus/utils"
)

type TaskController struct {
	registry *services.Registry
}

func NewTaskController(registry *services.Registry) *TaskController {
	return &TaskController{registry: registry}
}

func (c *TaskController) store(ctx *gin.Context) (*services.StoreService, bool) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return c.registry.Store(userID), true
}

// parseProjectRef resolves a project reference from the API. Empty string
// and the "independent" sentinel both mean no project.
func parseProjectRef(value string) (*uuid.UUID, bool) {
	if value == "" || value == models.IndependentProject {
		return nil, true
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// CreateTask creates a task, optionally linked to a project
func (c *TaskController) CreateTask(ctx *gin.Context) {
	var req struct {
		Title       string            `json:"title" binding:"required"`
		Description string            `json:"description"`
		ProjectID   string            `json:"project_id"`
		AssignedTo  []uuid.UUID       `json:"assigned_to"`
		Priority    models.Priority   `json:"priority"`
		Status      models.TaskStatus `json:"status"`
		Deadline    *time.Time        `json:"deadline"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projectID, ok := parseProjectRef(req.ProjectID)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	task := store.AddTask(services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   projectID,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
		Status:      req.Status,
		Deadline:    req.Deadline,
	})
	ctx.JSON(http.StatusCreated, task)
}

// GetTasks lists tasks, optionally filtered by project (or "independent")
func (c *TaskController) GetTasks(ctx *gin.Context) {
	store, ok := c.store(ctx)
	if !ok {
		return
	}

	tasks := store.Tasks()

	filter := ctx.Query("project_id")
	if filter == "" {
		ctx.JSON(http.StatusOK, tasks)
		return
	}

	projectID, ok := parseProjectRef(filter)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var out []models.Task
	for _, t := range tasks {
		switch {
		case projectID == nil && t.ProjectID == nil:
			out = append(out, t)
		case projectID != nil && t.ProjectID != nil && *t.ProjectID == *projectID:
			out = append(out, t)
		}
	}
	ctx.JSON(http.StatusOK, out)
}

// GetTask returns a single task
func (c *TaskController) GetTask(ctx *gin.Context) {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	task, found := store.Task(taskID)
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	ctx.JSON(http.StatusOK, task)
}

// UpdateTask merges partial fields; project stats are repaired by the store
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req struct {
		Title       *string            `json:"title"`
		Description *string            `json:"description"`
		ProjectID   *string            `json:"project_id"`
		AssignedTo  *[]uuid.UUID       `json:"assigned_to"`
		Priority    *models.Priority   `json:"priority"`
		Status      *models.TaskStatus `json:"status"`
		Deadline    *time.Time         `json:"deadline"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
		Status:      req.Status,
		Deadline:    req.Deadline,
	}
	if req.ProjectID != nil {
		projectID, ok := parseProjectRef(*req.ProjectID)
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
			return
		}
		patch.SetProject = true
		patch.ProjectID = projectID
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	if _, found := store.Task(taskID); !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	store.UpdateTask(taskID, patch)

	task, _ := store.Task(taskID)
	ctx.JSON(http.StatusOK, task)
}

// DeleteTask removes a task
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	store.DeleteTask(taskID)
	ctx.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
