package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user's workflow role from the Gin context
func GetUserRole(c *gin.Context) enum.Role {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	roleStr, ok := role.(string)
	if !ok {
		return ""
	}
	return enum.Role(roleStr)
}

// GetActor builds the actor snapshot for the authenticated user. Returns
// nil when the request carries no authenticated user.
func GetActor(c *gin.Context) *entity.ActorSnapshot {
	userID := GetUserID(c)
	if userID == nil {
		return nil
	}
	name, _ := c.Get("user_name")
	nameStr, _ := name.(string)
	return &entity.ActorSnapshot{
		UserID: *userID,
		Name:   nameStr,
		Role:   GetUserRole(c),
	}
}
