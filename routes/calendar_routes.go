package routes

import (
	"planejaplus/controllers"

	"github.com/gin-gonic/gin"
)

func SetupCalendarRoutes(router *gin.Engine, calendarController *controllers.CalendarController, authMiddleware gin.HandlerFunc) {
	calendarGroup := router.Group("/api/calendar")
	calendarGroup.Use(authMiddleware)
	{
		calendarGroup.POST("/events", calendarController.CreateEvent)
		calendarGroup.GET("/events", calendarController.GetEvents)
		calendarGroup.GET("/events/:id", calendarController.GetEvent)
		calendarGroup.PUT("/events/:id", calendarController.UpdateEvent)
		calendarGroup.DELETE("/events/:id", calendarController.DeleteEvent)
	}
}
