package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"planejaplus/services"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login authenticates against the demo roster
func (c *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
		RememberMe bool   `json:"remember_me"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.Login(ctx.Request.Context(), req.Identifier, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoginBlocked):
			ctx.JSON(http.StatusTooManyRequests, gin.H{
				"error":                "too many failed attempts",
				"block_time_remaining": int(c.authService.BlockTimeRemaining().Seconds()),
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Register creates a new auto-verified identity
func (c *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,min=2"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.Register(ctx.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Logout clears the remembered session
func (c *AuthController) Logout(ctx *gin.Context) {
	c.authService.Logout()
	ctx.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session returns the current session identity and lockout state
func (c *AuthController) Session(ctx *gin.Context) {
	user, ok := c.authService.CurrentUser()
	if !ok {
		ctx.JSON(http.StatusOK, gin.H{
			"user":       nil,
			"is_blocked": c.authService.IsBlocked(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":       user,
		"is_blocked": c.authService.IsBlocked(),
	})
}

// TestUsers lists the fixed demo roster
func (c *AuthController) TestUsers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"users": c.authService.TestUsers()})
}

// SwitchTestUser swaps the session to a roster identity without credentials
func (c *AuthController) SwitchTestUser(ctx *gin.Context) {
	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.SwitchToTestUser(req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTestUser) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown test user"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
