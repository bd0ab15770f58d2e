package services

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"scribe/internal/api/v1/dto"
	"scribe/internal/app/api"
	"scribe/internal/app/api/deepgram"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/model"
	"scribe/internal/app/repository"
	"scribe/internal/app/storage/uploads"
)

// DirectModel is the model used by the direct upload endpoint.
const DirectModel = string(deepgram.ModelNova2)

// TranscriptionServiceImpl transcribes uploads without going through the
// agent.
type TranscriptionServiceImpl struct {
	transcriber api.Transcriber
	store       repository.RecordStore
	uploads     *uploads.Store
	clock       func() time.Time
	logger      *zap.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(transcriber api.Transcriber, store repository.RecordStore, staging *uploads.Store, clock func() time.Time, logger *zap.Logger) *TranscriptionServiceImpl {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionServiceImpl{
		transcriber: transcriber,
		store:       store,
		uploads:     staging,
		clock:       clock,
		logger:      logger,
	}
}

// Upload stages the file, transcribes it with nova-2 and saves the record.
// The provider call is not cancelled when ctx is. The staged copy is
// removed before returning, whatever the outcome.
func (s *TranscriptionServiceImpl) Upload(ctx context.Context, upload Upload, language string) (*dto.UploadResponse, error) {
	if upload.Filename == "" {
		return nil, apperrors.ErrUnsupportedFormat.Withf("no file provided")
	}
	if err := deepgram.ValidateExtension(upload.Filename); err != nil {
		return nil, err
	}

	path, err := s.uploads.Save(ctx, upload.Filename, upload.Body)
	if err != nil {
		return nil, err
	}
	defer s.removeStaged(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.ErrStorageIO.Wrap(err, "open staged upload")
	}
	defer f.Close()

	filename := filepath.Base(path)
	detached := context.WithoutCancel(ctx)

	result, err := s.transcriber.Transcribe(detached, api.Audio{Filename: filename, Body: f}, DirectModel, language)
	if err != nil {
		return nil, err
	}

	now := s.clock().Truncate(time.Second)
	duration := math.Round(result.Elapsed.Seconds()*1000) / 1000

	total, err := s.store.Append(detached, model.TranscriptionRecord{
		Timestamp:         now,
		Filename:          filename,
		DurationSeconds:   model.Float64(duration),
		Model:             result.Model,
		TranscriptionText: result.Text,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("upload transcribed", zap.String("filename", filename), zap.Int("total", total))

	return &dto.UploadResponse{
		Success:       true,
		Message:       "File transcribed successfully",
		Filename:      filename,
		Transcription: result.Text,
		Duration:      duration,
		Timestamp:     now.Format(model.TimestampLayout),
	}, nil
}

func (s *TranscriptionServiceImpl) removeStaged(path string) {
	if err := s.uploads.Remove(path); err != nil {
		s.logger.Warn("failed to remove staged upload", zap.String("path", path), zap.Error(err))
	}
}
