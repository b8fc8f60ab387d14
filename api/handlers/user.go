package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialhub/services"
)

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

func GetMe(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			Fail(c, http.StatusNotFound, "user not found")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	Success(c, http.StatusOK, "ok", gin.H{"user": user})
}

func UpdateMe(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := userService.UpdateProfile(c.Request.Context(), userID, services.ProfileUpdate{
		Username: req.Username,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			Fail(c, http.StatusBadRequest, "username cannot be empty")
		case errors.Is(err, services.ErrNotFound):
			Fail(c, http.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrConflict):
			Fail(c, http.StatusConflict, "username already exists")
		default:
			Fail(c, http.StatusInternalServerError, "internal error")
		}
		return
	}
	Success(c, http.StatusOK, "updated", gin.H{"user": user})
}
