package app

import (
	"context"

	"go.uber.org/zap"

	"scribe/internal/app/agent"
	"scribe/internal/app/api"
	"scribe/internal/app/api/deepgram"
	"scribe/internal/app/api/gemini"
	"scribe/internal/app/api/openai"
	"scribe/internal/app/events"
	"scribe/internal/app/logging"
	"scribe/internal/app/metrics"
	"scribe/internal/app/repository"
	"scribe/internal/app/repository/csvstore"
	"scribe/internal/app/storage/uploads"
	"scribe/internal/app/tools"
	"scribe/internal/config"
)

// Application is the assembled object graph shared by the CLI and the HTTP
// server.
type Application struct {
	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Store       repository.RecordStore
	Uploads     *uploads.Store
	Transcriber api.Transcriber
	Tools       *tools.Registry
	Agent       *agent.Agent
}

func newApplication(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	store repository.RecordStore,
	staging *uploads.Store,
	transcriber api.Transcriber,
	registry *tools.Registry,
	a *agent.Agent,
) *Application {
	return &Application{
		Config:      cfg,
		Logger:      logger,
		Metrics:     m,
		Store:       store,
		Uploads:     staging,
		Transcriber: transcriber,
		Tools:       registry,
		Agent:       a,
	}
}

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.NewLogger(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideCSVStore(cfg *config.Config) (*csvstore.Store, error) {
	return csvstore.Open(cfg.Storage.CSVPath)
}

// providePublisher connects to Redis when REDIS_ADDR is set. An unreachable
// server downgrades to no events rather than failing startup.
func providePublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (events.Publisher, func()) {
	if cfg.Redis.Addr == "" {
		return events.NopPublisher{}, func() {}
	}

	publisher, err := events.NewRedisPublisher(ctx, events.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		Channel:  cfg.Redis.Channel,
	})
	if err != nil {
		logger.Warn("record events disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return events.NopPublisher{}, func() {}
	}

	logger.Info("publishing record events", zap.String("addr", cfg.Redis.Addr), zap.String("channel", publisher.Channel()))
	return publisher, func() { _ = publisher.Close() }
}

func provideRecordStore(store *csvstore.Store, publisher events.Publisher, logger *zap.Logger, m *metrics.Metrics) repository.RecordStore {
	return events.NewPublishingStore(store, publisher, logger, m)
}

// provideArchiver returns nil when MinIO is not configured or unreachable.
func provideArchiver(ctx context.Context, cfg *config.Config, logger *zap.Logger) uploads.Archiver {
	if cfg.MinIO.Endpoint == "" {
		return nil
	}

	archiver, err := uploads.NewMinIOArchiver(ctx, uploads.MinIOConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		logger.Warn("upload archive disabled", zap.String("endpoint", cfg.MinIO.Endpoint), zap.Error(err))
		return nil
	}
	return archiver
}

func provideUploads(cfg *config.Config, archiver uploads.Archiver, logger *zap.Logger) (*uploads.Store, error) {
	return uploads.NewStore(cfg.Storage.UploadDir, archiver, logger.Named("uploads"))
}

// provideTranscriber passes an empty key when the configured one is missing
// or a placeholder, so the client fails locally with a configuration error.
func provideTranscriber(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) api.Transcriber {
	apiKey := cfg.Deepgram.APIKey
	if !cfg.DeepgramConfigured() {
		apiKey = ""
	}
	return deepgram.NewClient(deepgram.Config{
		APIKey:  apiKey,
		BaseURL: cfg.Deepgram.BaseURL,
		Timeout: cfg.Deepgram.Timeout,
	}, logger, m)
}

func provideRegistry(transcriber api.Transcriber, store repository.RecordStore, cfg *config.Config, logger *zap.Logger) *tools.Registry {
	return tools.NewRegistry(transcriber, store,
		tools.WithUploadDir(cfg.Storage.UploadDir),
		tools.WithLogger(logger.Named("tools")),
	)
}

// provideSelector picks the model backend. Without an LLM key the agent
// runs on keyword routing.
func provideSelector(ctx context.Context, cfg *config.Config, logger *zap.Logger) (agent.Selector, error) {
	if !cfg.LLMConfigured() {
		logger.Warn("no LLM key configured, using keyword routing", zap.String("key", cfg.LLM.KeyEnv))
		return agent.KeywordSelector{}, nil
	}

	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return gemini.NewToolSelector(ctx, gemini.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		}, logger)
	default:
		return openai.NewToolSelector(openai.Config{
			Provider: cfg.LLM.Provider,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
			Model:    cfg.LLM.Model,
			Timeout:  cfg.LLM.Timeout,
		}, logger), nil
	}
}

func provideAgent(selector agent.Selector, registry *tools.Registry, logger *zap.Logger, m *metrics.Metrics) *agent.Agent {
	return agent.New(selector, registry, logger, m)
}
