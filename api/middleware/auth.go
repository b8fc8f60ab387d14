package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"socialhub/models"
	"socialhub/services"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// AuthRequired проверяет Bearer токен на каждом запросе, без кеширования.
// При успехе кладет user_id и role в контекст.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		userID, role, err := services.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// OptionalAuth извлекает личность, если токен есть и валиден, но не прерывает запрос
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if userID, role, err := services.ParseToken(token); err == nil {
				c.Set("user_id", userID)
				c.Set("role", role)
			}
		}
		c.Next()
	}
}

// AdminRequired ставится после AuthRequired и пропускает только роль admin
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role.(models.Role) != models.ROLE_ADMIN {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin required"})
			return
		}
		c.Next()
	}
}
