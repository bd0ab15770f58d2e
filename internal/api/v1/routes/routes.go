package routes

import (
	"github.com/gin-gonic/gin"

	"scribe/internal/api/v1/handlers"
	"scribe/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	AgentService         services.AgentService
	TranscriptionService services.TranscriptionService
	HistoryService       services.HistoryService
	StatsService         services.StatsService
	System               *handlers.SystemHandler
}

// RegisterRoutes registers every endpoint at the root of router.
func RegisterRoutes(router gin.IRouter, container *ServiceContainer) {
	if container.System != nil {
		router.GET("/", container.System.Root)
		router.GET("/health", container.System.Health)
	}

	agentHandler := handlers.NewAgentHandler(container.AgentService)
	router.POST("/agent", agentHandler.Process)

	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	router.POST("/upload", transcriptionHandler.Upload)

	historyHandler := handlers.NewHistoryHandler(container.HistoryService)
	router.GET("/history", historyHandler.History)
	router.GET("/download", historyHandler.Download)

	statsHandler := handlers.NewStatsHandler(container.StatsService)
	router.GET("/stats", statsHandler.Stats)
}
