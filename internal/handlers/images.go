package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop/api/internal/repository"
	"sweetshop/api/internal/service"
)

const maxImageSize = 5 << 20 // 5 MiB

func (h HandlerSet) UploadSweetImage(c *gin.Context) {
	if h.images == nil {
		errorJSON(c, http.StatusServiceUnavailable, "Storage unavailable", "Image storage is not configured")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Missing file", "An image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		errorJSON(c, http.StatusBadRequest, "File too large", "Image must be 5 MB or smaller")
		return
	}

	sweet, err := h.images.Upload(
		c.Request.Context(),
		c.Param("id"),
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			errorJSON(c, http.StatusBadRequest, "Invalid file", vErr.Message)
		case errors.Is(err, repository.ErrSweetNotFound):
			errorJSON(c, http.StatusNotFound, "Not found", "Sweet not found")
		default:
			h.log.Error().Err(err).Str("sweet_id", c.Param("id")).Msg("image upload failed")
			serverError(c, "Upload failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"sweet": toSweetResponse(sweet)})
}
