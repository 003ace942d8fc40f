package routes

import (
	"planejaplus/utils"

	"github.com/gin-gonic/gin"
)

// SetupNotificationRoutes exposes the websocket channel used for reminder
// notifications. The token is read from the query string by the middleware.
func SetupNotificationRoutes(router *gin.Engine, hub *utils.Hub, authMiddleware gin.HandlerFunc) {
	router.GET("/ws", authMiddleware, hub.ServeWS)
}
