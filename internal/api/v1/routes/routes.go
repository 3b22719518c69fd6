package routes

import (
	"github.com/gin-gonic/gin"
	"voice-transcriber/internal/api/v1/handlers"
	"voice-transcriber/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	AudioProcessor    services.AudioProcessor
	StrictStatusCodes bool
}

// RegisterRoutes registers the transcription routes
func RegisterRoutes(router gin.IRoutes, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.AudioProcessor, container.StrictStatusCodes)
	router.POST("/process-audio", transcriptionHandler.ProcessAudio)
}
