// Package handlers contains the Gin HTTP handlers for the optimizer API.
package handlers

import (
	"github.com/MileWise/milewise-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getUserIDFromContext returns the authenticated user ID stored by the auth
// middleware, or "" when the request is unauthenticated.
func getUserIDFromContext(c *gin.Context) string {
	return middleware.GetUserID(c)
}

// isValidUUID reports whether s parses as a UUID.
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
