package handlers

import (
	"net/http"
	"strings"

	"assessment-service/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired resolves the caller's identity from the gateway header,
// falling back to the Authorization token when the header is absent.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			fromToken, err := utils.GetUserIDFromToken(c)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			userID = fromToken
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// AdminRequired gates admin endpoints on the gateway's permission header.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		permissions := c.GetHeader("X-User-Permissions")
		if !strings.Contains(permissions, "admin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin permission required"})
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
