package events

import (
	"context"

	"go.uber.org/zap"

	"scribe/internal/app/metrics"
	"scribe/internal/app/model"
	"scribe/internal/app/repository"
)

// PublishingStore wraps a RecordStore and announces every successful
// append. Publish failures are logged and never fail the append.
type PublishingStore struct {
	repository.RecordStore

	publisher Publisher
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

var _ repository.RecordStore = (*PublishingStore)(nil)

// NewPublishingStore decorates store. logger and m may be nil.
func NewPublishingStore(store repository.RecordStore, publisher Publisher, logger *zap.Logger, m *metrics.Metrics) *PublishingStore {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublishingStore{RecordStore: store, publisher: publisher, logger: logger, metrics: m}
}

func (s *PublishingStore) Append(ctx context.Context, record model.TranscriptionRecord) (int, error) {
	total, err := s.RecordStore.Append(ctx, record)
	if err != nil {
		return 0, err
	}
	s.metrics.RecordAppended()

	if err := s.publisher.RecordSaved(context.WithoutCancel(ctx), record, total); err != nil {
		s.logger.Warn("failed to publish record event",
			zap.String("filename", record.Filename),
			zap.Error(err),
		)
	}
	return total, nil
}
