package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"socialhub/services"
)

var adminService = services.NewAdminService()

func AdminListUsers(c *gin.Context) {
	page, perPage := pagination(c)
	result, err := adminService.ListUsers(c.Request.Context(), page, perPage)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	Success(c, http.StatusOK, "ok", result)
}

func AdminDeleteUser(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		Fail(c, http.StatusNotFound, "user not found")
		return
	}

	if err := adminService.DeleteUser(c.Request.Context(), adminID, userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			Fail(c, http.StatusNotFound, "user not found")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	Success(c, http.StatusOK, "deleted", gin.H{"user_id": userID})
}

func AdminListPosts(c *gin.Context) {
	page, perPage := pagination(c)
	result, err := adminService.ListPosts(c.Request.Context(), page, perPage)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	Success(c, http.StatusOK, "ok", result)
}

func AdminDeletePost(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	if err := adminService.DeletePost(c.Request.Context(), adminID, postID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			Fail(c, http.StatusNotFound, "post not found")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	Success(c, http.StatusOK, "deleted", gin.H{"post_id": postID})
}

func AdminStats(c *gin.Context) {
	stats, err := adminService.Stats(c.Request.Context())
	if err != nil {
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	Success(c, http.StatusOK, "ok", stats)
}
