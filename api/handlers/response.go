package handlers

import (
	"github.com/gin-gonic/gin"

	"socialhub/models"
)

// Success отвечает единым конвертом {"message": ..., "data": ...}
func Success(c *gin.Context, status int, message string, data any) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// Fail отвечает конвертом ошибки {"message": ...} без внутренних деталей
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// currentUser достает личность, положенную auth middleware
func currentUser(c *gin.Context) (int64, models.Role, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, "", false
	}
	role, _ := c.Get("role")
	r, _ := role.(models.Role)
	return userID.(int64), r, true
}
