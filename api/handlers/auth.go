package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialhub/services"
)

var userService = services.NewUserService()

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := userService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			Fail(c, http.StatusBadRequest, "username and password required")
		case errors.Is(err, services.ErrConflict):
			Fail(c, http.StatusConflict, "username already exists")
		default:
			Fail(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	Success(c, http.StatusCreated, "registered", gin.H{"user": user})
}

func Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "username and password required")
		return
	}

	token, user, err := userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			Fail(c, http.StatusBadRequest, "username and password required")
		case errors.Is(err, services.ErrUnauthenticated):
			Fail(c, http.StatusUnauthorized, "invalid credentials")
		default:
			Fail(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	Success(c, http.StatusOK, "logged in", gin.H{"access_token": token, "user": user})
}
