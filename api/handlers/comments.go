package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialhub/api/middleware"
	"socialhub/services"
)

var (
	commentService = services.NewCommentService()
	ratingService  = services.NewRatingService()
)

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type RateRequest struct {
	Score *int `json:"score"`
}

func CreateComment(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "content required")
		return
	}

	comment, err := commentService.Create(c.Request.Context(), postID, userID, req.Content)
	if err != nil {
		middleware.RecordContentOperation("create_comment", "error", serviceName)
		switch {
		case errors.Is(err, services.ErrNotFound):
			Fail(c, http.StatusNotFound, "post not found")
		case errors.Is(err, services.ErrInvalidInput):
			Fail(c, http.StatusBadRequest, "content required")
		default:
			Fail(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	middleware.RecordContentOperation("create_comment", "ok", serviceName)
	Success(c, http.StatusCreated, "created", gin.H{"comment": comment})
}

func ListComments(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	page, perPage := pagination(c)

	result, err := commentService.List(c.Request.Context(), postID, page, perPage)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			Fail(c, http.StatusNotFound, "post not found")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	Success(c, http.StatusOK, "ok", result)
}

func RatePost(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
		Fail(c, http.StatusBadRequest, "score must be an integer")
		return
	}

	rating, err := ratingService.Rate(c.Request.Context(), postID, userID, *req.Score)
	if err != nil {
		middleware.RecordContentOperation("rate_post", "error", serviceName)
		switch {
		case errors.Is(err, services.ErrNotFound):
			Fail(c, http.StatusNotFound, "post not found")
		case errors.Is(err, services.ErrInvalidInput):
			Fail(c, http.StatusBadRequest, "score must be between 1 and 5")
		default:
			Fail(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	middleware.RecordContentOperation("rate_post", "ok", serviceName)
	Success(c, http.StatusCreated, "saved", gin.H{"rating": rating})
}
