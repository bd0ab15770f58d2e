package services

import (
	"context"
	"io"

	"scribe/internal/api/v1/dto"
)

// Upload is an audio file received with a request.
type Upload struct {
	Filename string
	Body     io.Reader
}

// Download is a rendered history export.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AgentService runs the dispatch agent on a user message.
type AgentService interface {
	Process(ctx context.Context, message string, upload *Upload) string
}

// TranscriptionService defines the interface for direct transcription
type TranscriptionService interface {
	Upload(ctx context.Context, upload Upload, language string) (*dto.UploadResponse, error)
}

// HistoryService defines the interface for history queries and downloads
type HistoryService interface {
	History(ctx context.Context, query dto.HistoryQuery) (*dto.HistoryResponse, error)
	Download(ctx context.Context, format string) (*Download, error)
}

// StatsService defines the interface for statistics operations
type StatsService interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}
