package routes

import (
	"planejaplus/controllers"

	"github.com/gin-gonic/gin"
)

func SetupTaskRoutes(router *gin.Engine, taskController *controllers.TaskController, authMiddleware gin.HandlerFunc) {
	taskGroup := router.Group("/api/tasks")
	taskGroup.Use(authMiddleware)
	{
		taskGroup.POST("", taskController.CreateTask)
		taskGroup.GET("", taskController.GetTasks)
		taskGroup.GET("/:id", taskController.GetTask)
		taskGroup.PUT("/:id", taskController.UpdateTask)
		taskGroup.DELETE("/:id", taskController.DeleteTask)
	}
}
