package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"planejaplus/models"
	"planejaplus/services"
	"planejaplus/utils"
)

type TeamController struct {
	registry *services.Registry
}

func NewTeamController(registry *services.Registry) *TeamController {
	return &TeamController{registry: registry}
}

func (c *TeamController) store(ctx *gin.Context) (*services.StoreService, bool) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return c.registry.Store(userID), true
}

// CreateTeam creates a new team; the leader always ends up in the member list
func (c *TeamController) CreateTeam(ctx *gin.Context) {
	var req struct {
		Name        string            `json:"name" binding:"required"`
		Description string            `json:"description"`
		Objective   string            `json:"objective"`
		Color       string            `json:"color"`
		Status      models.TeamStatus `json:"status"`
		LeaderID    uuid.UUID         `json:"leader_id" binding:"required"`
		MemberIDs   []uuid.UUID       `json:"member_ids"`
		ProjectIDs  []uuid.UUID       `json:"projects"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	team := store.AddTeam(services.TeamInput{
		Name:        req.Name,
		Description: req.Description,
		Objective:   req.Objective,
		Color:       req.Color,
		Status:      req.Status,
		LeaderID:    req.LeaderID,
		MemberIDs:   req.MemberIDs,
		ProjectIDs:  req.ProjectIDs,
	})
	ctx.JSON(http.StatusCreated, team)
}

// GetTeams lists the current user's teams
func (c *TeamController) GetTeams(ctx *gin.Context) {
	store, ok := c.store(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, store.Teams())
}

// GetTeam returns a single team
func (c *TeamController) GetTeam(ctx *gin.Context) {
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID"})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	team, found := store.Team(teamID)
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}
	ctx.JSON(http.StatusOK, team)
}

// UpdateTeam merges partial fields into a team
func (c *TeamController) UpdateTeam(ctx *gin.Context) {
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID"})
		return
	}

	var req struct {
		Name        *string            `json:"name"`
		Description *string            `json:"description"`
		Objective   *string            `json:"objective"`
		Color       *string            `json:"color"`
		Status      *models.TeamStatus `json:"status"`
		LeaderID    *uuid.UUID         `json:"leader_id"`
		MemberIDs   *[]uuid.UUID       `json:"member_ids"`
		ProjectIDs  *[]uuid.UUID       `json:"projects"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	if _, found := store.Team(teamID); !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	store.UpdateTeam(teamID, services.TeamPatch{
		Name:        req.Name,
		Description: req.Description,
		Objective:   req.Objective,
		Color:       req.Color,
		Status:      req.Status,
		LeaderID:    req.LeaderID,
		MemberIDs:   req.MemberIDs,
		ProjectIDs:  req.ProjectIDs,
	})

	team, _ := store.Team(teamID)
	ctx.JSON(http.StatusOK, team)
}

// DeleteTeam removes a team
func (c *TeamController) DeleteTeam(ctx *gin.Context) {
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID"})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	store.DeleteTeam(teamID)
	ctx.JSON(http.StatusOK, gin.H{"message": "team deleted"})
}

// GetMembers lists a team's members
func (c *TeamController) GetMembers(ctx *gin.Context) {
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID"})
		return
	}

	store, ok := c.store(ctx)
	if !ok {
		return
	}

	team, found := store.Team(teamID)
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}
	ctx.JSON(http.StatusOK, team.Members)
}
