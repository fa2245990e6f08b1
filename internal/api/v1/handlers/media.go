package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video2broll/internal/api/errors"
	"video2broll/internal/api/middleware"
	"video2broll/internal/api/v1/dto"
	"video2broll/internal/api/v1/services"
)

// MediaHandler handles media record API endpoints
type MediaHandler struct {
	service services.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service services.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// Upload handles POST /api/v1/media/upload
func (h *MediaHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("No file uploaded"))
		return
	}
	defer file.Close()

	owner := c.PostForm("owner")

	response, err := h.service.Upload(c.Request.Context(), owner, header.Filename, file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/media/:id
func (h *MediaHandler) Get(c *gin.Context) {
	response, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/media
func (h *MediaHandler) List(c *gin.Context) {
	var query dto.ListMediaQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.List(c.Request.Context(), query.Owner)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
