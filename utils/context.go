package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserIDFromContext extracts the user ID from the Gin context
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	userIDVal, exists := c.Get("userID")
	if !exists {
		return uuid.UUID{}, fmt.Errorf("user ID not found in context")
	}

	switch userID := userIDVal.(type) {
	case uuid.UUID:
		return userID, nil
	case string:
		return uuid.Parse(userID)
	default:
		return uuid.UUID{}, fmt.Errorf("user ID is of unknown type: %T", userIDVal)
	}
}
