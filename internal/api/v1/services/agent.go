package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"scribe/internal/app/agent"
	"scribe/internal/app/api/deepgram"
	"scribe/internal/app/storage/uploads"
)

// Runner runs one agent turn.
type Runner interface {
	Run(ctx context.Context, req agent.Request) string
}

// AgentServiceImpl stages an optional upload and hands the message to the
// agent.
type AgentServiceImpl struct {
	agent   Runner
	uploads *uploads.Store
	logger  *zap.Logger
}

func NewAgentService(runner Runner, staging *uploads.Store, logger *zap.Logger) *AgentServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentServiceImpl{agent: runner, uploads: staging, logger: logger}
}

// Process always returns text. An upload with an unsupported extension is
// rejected before anything is written.
func (s *AgentServiceImpl) Process(ctx context.Context, message string, upload *Upload) (reply string) {
	var staged string
	if upload != nil && upload.Filename != "" {
		if err := deepgram.ValidateExtension(upload.Filename); err != nil {
			return "Error: invalid file extension. Supported formats: " + strings.Join(deepgram.SupportedExtensions(), ", ")
		}

		path, err := s.uploads.Save(ctx, upload.Filename, upload.Body)
		if err != nil {
			s.logger.Warn("failed to stage upload", zap.Error(err))
			return "Error processing your request: " + err.Error()
		}
		staged = path
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("agent request panicked", zap.Any("panic", r))
			s.discard(staged)
			reply = "Error processing your request: internal error"
		}
	}()

	reply = s.agent.Run(context.WithoutCancel(ctx), agent.Request{Message: message, AttachmentPath: staged})
	if strings.TrimSpace(reply) == "" {
		s.discard(staged)
		reply = "Error processing your request: empty response"
	}
	return reply
}

func (s *AgentServiceImpl) discard(path string) {
	if path == "" {
		return
	}
	if err := s.uploads.Remove(path); err != nil {
		s.logger.Warn("failed to remove staged upload", zap.String("path", path), zap.Error(err))
	}
}
