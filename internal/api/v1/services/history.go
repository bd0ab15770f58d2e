package services

import (
	"bytes"
	"context"
	"time"

	"github.com/samber/lo"

	"scribe/internal/api/errors"
	"scribe/internal/api/v1/dto"
	"scribe/internal/app/export"
	"scribe/internal/app/model"
	"scribe/internal/app/repository"
)

type HistoryServiceImpl struct {
	store repository.RecordStore
	clock func() time.Time
}

func NewHistoryService(store repository.RecordStore, clock func() time.Time) *HistoryServiceImpl {
	if clock == nil {
		clock = time.Now
	}
	return &HistoryServiceImpl{store: store, clock: clock}
}

// History returns matching records, newest first.
func (s *HistoryServiceImpl) History(ctx context.Context, query dto.HistoryQuery) (*dto.HistoryResponse, error) {
	records, err := s.store.Query(ctx, query.Search, query.Limit)
	if err != nil {
		return nil, err
	}

	items := lo.Map(records, func(r model.TranscriptionRecord, _ int) dto.HistoryItem {
		return dto.NewHistoryItem(r)
	})
	return &dto.HistoryResponse{
		Success:        true,
		TotalCount:     len(items),
		Transcriptions: items,
	}, nil
}

// Download renders the whole history. An empty history is not found.
func (s *HistoryServiceImpl) Download(ctx context.Context, format string) (*Download, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	records, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewNotFoundError("No transcriptions found")
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, f, records); err != nil {
		return nil, err
	}

	return &Download{
		Filename:    f.Filename(s.clock()),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
