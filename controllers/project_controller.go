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

type ProjectController struct {
	registry *services.Registry
}

func NewProjectController(registry *services.Registry) *ProjectController {
	return &ProjectController{registry: registry}
}

func (c *ProjectController) store(ctx *gin.Context) (*services.StoreService, bool) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return c.registry.Store(userID), true
}

// CreateProject creates a new project
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req struct {
		Name        string               `json:"name" binding:"required"`
		Description string               `json:"description"`
		Status      models.ProjectStatus `json:"status"`
		Deadline    *time.Time           `json:"deadline"`
		TeamIDs     []uuid.UUID          `json:"team"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	project := store.AddProject(services.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Deadline:    req.Deadline,
		TeamIDs:     req.TeamIDs,
	})
	ctx.JSON(http.StatusCreated, project)
}

// GetProjects lists the current user's projects
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	store, ok := c.store(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, store.Projects())
}

// GetProject returns a single project
func (c *ProjectController) GetProject(ctx *gin.Context) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	project, found := store.Project(projectID)
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	ctx.JSON(http.StatusOK, project)
}

// UpdateProject merges partial fields into a project
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req struct {
		Name        *string               `json:"name"`
		Description *string               `json:"description"`
		Status      *models.ProjectStatus `json:"status"`
		Deadline    *time.Time            `json:"deadline"`
		TeamIDs     *[]uuid.UUID          `json:"team"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	if _, found := store.Project(projectID); !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	store.UpdateProject(projectID, services.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Deadline:    req.Deadline,
		TeamIDs:     req.TeamIDs,
	})

	project, _ := store.Project(projectID)
	ctx.JSON(http.StatusOK, project)
}

// DeleteProject removes a project and all tasks referencing it
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	store.DeleteProject(projectID)
	ctx.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
