package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"socialhub/api/middleware"
	"socialhub/services"
)

var postService = services.NewPostService()

const serviceName = "socialhub"

type MediaItem struct {
	Type         string `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type CreatePostRequest struct {
	Content    string      `json:"content"`
	Visibility string      `json:"visibility"`
	Tags       any         `json:"tags"`
	Media      []MediaItem `json:"media"`
	MediaURL   string      `json:"mediaUrl"`
	MediaType  string      `json:"mediaType"`
}

type UpdatePostRequest struct {
	Content    *string      `json:"content"`
	Visibility string       `json:"visibility"`
	Tags       any          `json:"tags"`
	Media      *[]MediaItem `json:"media"`
	MediaURL   string       `json:"mediaUrl"`
	MediaType  string       `json:"mediaType"`
}

// mediaInputs нормализует медиа: список объектов или плоская пара
// mediaUrl+mediaType как список из одного элемента
func mediaInputs(items []MediaItem, flatURL, flatType string) []services.MediaInput {
	if len(items) == 0 && flatURL != "" && flatType != "" {
		items = []MediaItem{{Type: flatType, URL: flatURL}}
	}
	inputs := make([]services.MediaInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, services.MediaInput{
			Type:         item.Type,
			URL:          item.URL,
			ThumbnailURL: item.ThumbnailURL,
		})
	}
	return inputs
}

func postIDParam(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return 0, false
	}
	return postID, true
}

func CreatePost(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	post, err := postService.Create(
		c.Request.Context(),
		userID,
		req.Content,
		req.Visibility,
		services.TagNames(req.Tags),
		mediaInputs(req.Media, req.MediaURL, req.MediaType),
	)
	if err != nil {
		middleware.RecordContentOperation("create_post", "error", serviceName)
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	middleware.RecordContentOperation("create_post", "ok", serviceName)
	Success(c, http.StatusCreated, "created", gin.H{"post": post})
}

func ListPosts(c *gin.Context) {
	page, perPage := pagination(c)
	filters := services.PostFilters{
		Tag:       c.Query("tag"),
		Keyword:   c.Query("keyword"),
		StartDate: parseDate(c.Query("start_date")),
		EndDate:   parseDate(c.Query("end_date")),
		Page:      page,
		PerPage:   perPage,
	}
	if raw := c.Query("user_id"); raw != "" {
		if userID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.UserID = userID
		}
	}

	result, err := postService.List(c.Request.Context(), filters)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	Success(c, http.StatusOK, "ok", result)
}

func GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := postService.GetByID(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			Fail(c, http.StatusNotFound, "post not found")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}
	Success(c, http.StatusOK, "ok", gin.H{"post": post})
}

func UpdatePost(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	upd := services.PostUpdate{
		Content:    req.Content,
		Visibility: req.Visibility,
	}
	if req.Tags != nil {
		upd.Tags = services.TagNames(req.Tags)
		upd.TagsSet = true
	}
	if req.Media != nil {
		upd.Media = mediaInputs(*req.Media, "", "")
		upd.MediaSet = true
	} else if req.MediaURL != "" && req.MediaType != "" {
		upd.Media = mediaInputs(nil, req.MediaURL, req.MediaType)
		upd.MediaSet = true
	}

	post, err := postService.Update(c.Request.Context(), userID, role, postID, upd)
	if err != nil {
		middleware.RecordContentOperation("update_post", "error", serviceName)
		switch {
		case errors.Is(err, services.ErrNotFound):
			Fail(c, http.StatusNotFound, "post not found")
		case errors.Is(err, services.ErrForbidden):
			Fail(c, http.StatusForbidden, "forbidden")
		default:
			Fail(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	middleware.RecordContentOperation("update_post", "ok", serviceName)
	Success(c, http.StatusOK, "updated", gin.H{"post": post})
}

func DeletePost(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	err := postService.Delete(c.Request.Context(), userID, role, postID)
	if err != nil {
		middleware.RecordContentOperation("delete_post", "error", serviceName)
		switch {
		case errors.Is(err, services.ErrNotFound):
			Fail(c, http.StatusNotFound, "post not found")
		case errors.Is(err, services.ErrForbidden):
			Fail(c, http.StatusForbidden, "forbidden")
		default:
			Fail(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	middleware.RecordContentOperation("delete_post", "ok", serviceName)
	Success(c, http.StatusOK, "deleted", gin.H{"post_id": postID})
}
