package routes

import (
	"planejaplus/controllers"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.Engine, authController *controllers.AuthController, authMiddleware gin.HandlerFunc) {
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/register", authController.Register)
		authGroup.GET("/session", authController.Session)
		authGroup.GET("/test-users", authController.TestUsers)
		authGroup.POST("/test-users/switch", authController.SwitchTestUser)
	}

	authGroup.POST("/logout", authMiddleware, authController.Logout)
}
