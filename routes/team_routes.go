package routes

import (
	"planejaplus/controllers"

	"github.com/gin-gonic/gin"
)

func SetupTeamRoutes(router *gin.Engine, teamController *controllers.TeamController, authMiddleware gin.HandlerFunc) {
	teamGroup := router.Group("/api/teams")
	teamGroup.Use(authMiddleware)
	{
		teamGroup.POST("", teamController.CreateTeam)
		teamGroup.GET("", teamController.GetTeams)
		teamGroup.GET("/:id", teamController.GetTeam)
		teamGroup.PUT("/:id", teamController.UpdateTeam)
		teamGroup.DELETE("/:id", teamController.DeleteTeam)
		teamGroup.GET("/:id/members", teamController.GetMembers)
	}
}
