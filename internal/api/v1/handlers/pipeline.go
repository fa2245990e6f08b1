package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video2broll/internal/api/middleware"
	"video2broll/internal/api/v1/dto"
	"video2broll/internal/api/v1/services"
)

// PipelineHandler handles b-roll pipeline API endpoints
type PipelineHandler struct {
	service services.PipelineService
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(service services.PipelineService) *PipelineHandler {
	return &PipelineHandler{service: service}
}

// SubmitTranscription handles POST /api/v1/media/:id/transcription.
// Submission is asynchronous; the caller polls the returned job id.
func (h *PipelineHandler) SubmitTranscription(c *gin.Context) {
	response, err := h.service.SubmitTranscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response)
}

// PollTranscription handles GET /api/v1/transcriptions/:jobID
func (h *PipelineHandler) PollTranscription(c *gin.Context) {
	response, err := h.service.PollTranscription(c.Request.Context(), c.Param("jobID"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExtractKeywords handles POST /api/v1/media/:id/keywords
func (h *PipelineHandler) ExtractKeywords(c *gin.Context) {
	response, err := h.service.ExtractKeywords(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// MatchClips handles POST /api/v1/media/:id/clips
func (h *PipelineHandler) MatchClips(c *gin.Context) {
	var req dto.MatchClipsRequest
	if c.Request.ContentLength > 0 {
		if err := middleware.ValidateRequest(c, &req); err != nil {
			middleware.HandleError(c, err)
			return
		}
	}

	response, err := h.service.MatchClips(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListClips handles GET /api/v1/media/:id/clips
func (h *PipelineHandler) ListClips(c *gin.Context) {
	response, err := h.service.ListClips(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// BuildPackage handles POST /api/v1/media/:id/package
func (h *PipelineHandler) BuildPackage(c *gin.Context) {
	var req dto.PackageRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.BuildPackage(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
