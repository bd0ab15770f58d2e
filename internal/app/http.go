package app

import (
	"time"

	"scribe/internal/api/server"
	"scribe/internal/api/v1/handlers"
	"scribe/internal/api/v1/routes"
	"scribe/internal/api/v1/services"
)

// ServiceContainer wires the HTTP services to the application graph.
func (a *Application) ServiceContainer(version string) *routes.ServiceContainer {
	logger := a.Logger.Named("http")
	return &routes.ServiceContainer{
		AgentService:         services.NewAgentService(a.Agent, a.Uploads, logger),
		TranscriptionService: services.NewTranscriptionService(a.Transcriber, a.Store, a.Uploads, time.Now, logger),
		HistoryService:       services.NewHistoryService(a.Store, time.Now),
		StatsService:         services.NewStatsService(a.Store),
		System:               handlers.NewSystemHandler(version, a.Config.DeepgramConfigured(), time.Now),
	}
}

// NewServer builds the HTTP server listening on addr.
func (a *Application) NewServer(addr, version string) *server.Server {
	return server.NewServer(server.Config{
		Addr:        addr,
		ReadTimeout: 5 * time.Minute,
		IdleTimeout: 2 * time.Minute,
		Environment: a.Config.Environment,
	}, a.ServiceContainer(version), a.Metrics, a.Logger)
}
