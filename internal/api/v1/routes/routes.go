package routes

import (
	"github.com/gin-gonic/gin"

	"video2broll/internal/api/v1/handlers"
	"video2broll/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	MediaService    services.MediaService
	PipelineService services.PipelineService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	mediaHandler := handlers.NewMediaHandler(container.MediaService)
	pipelineHandler := handlers.NewPipelineHandler(container.PipelineService)

	media := router.Group("/media")
	{
		media.POST("/upload", mediaHandler.Upload)
		media.GET("", mediaHandler.List)
		media.GET("/:id", mediaHandler.Get)
		media.DELETE("/:id", mediaHandler.Delete)

		media.POST("/:id/transcription", pipelineHandler.SubmitTranscription)
		media.POST("/:id/keywords", pipelineHandler.ExtractKeywords)
		media.POST("/:id/clips", pipelineHandler.MatchClips)
		media.GET("/:id/clips", pipelineHandler.ListClips)
		media.POST("/:id/package", pipelineHandler.BuildPackage)
	}

	router.GET("/transcriptions/:jobID", pipelineHandler.PollTranscription)
}
