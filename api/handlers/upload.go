package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialhub/api/middleware"
	"socialhub/services"
)

var uploadService = services.NewUploadService()

func Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		Fail(c, http.StatusBadRequest, "file required")
		return
	}

	filename, kind, err := uploadService.Save(fileHeader)
	if err != nil {
		middleware.RecordContentOperation("upload", "error", serviceName)
		if errors.Is(err, services.ErrInvalidInput) {
			Fail(c, http.StatusBadRequest, "only image and video uploads are allowed")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	url := scheme + "://" + c.Request.Host + "/uploads/" + filename

	middleware.RecordContentOperation("upload", "ok", serviceName)
	Success(c, http.StatusOK, "uploaded", gin.H{
		"url":      url,
		"filename": filename,
		"type":     kind,
	})
}
