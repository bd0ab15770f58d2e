package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"scribe/internal/app/model"
	"scribe/internal/app/repository"
)

// MockRecordStore is a testify mock of repository.RecordStore.
type MockRecordStore struct {
	mock.Mock
}

var _ repository.RecordStore = (*MockRecordStore)(nil)

// NewMockRecordStore creates a MockRecordStore bound to t.
func NewMockRecordStore(t *testing.T) *MockRecordStore {
	m := &MockRecordStore{}
	m.Test(t)
	return m
}

func (m *MockRecordStore) Append(ctx context.Context, record model.TranscriptionRecord) (int, error) {
	args := m.Called(ctx, record)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordStore) Query(ctx context.Context, filter string, limit int) ([]model.TranscriptionRecord, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TranscriptionRecord), args.Error(1)
}

func (m *MockRecordStore) All(ctx context.Context) ([]model.TranscriptionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TranscriptionRecord), args.Error(1)
}

func (m *MockRecordStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordStore) Export(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
