// Package servicetest provides testify mocks of the v1 service interfaces.
package servicetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"scribe/internal/api/v1/dto"
	"scribe/internal/api/v1/services"
)

// MockServices contains all mock services for testing
type MockServices struct {
	AgentService         *MockAgentService
	TranscriptionService *MockTranscriptionService
	HistoryService       *MockHistoryService
	StatsService         *MockStatsService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		AgentService:         NewMockAgentService(t),
		TranscriptionService: NewMockTranscriptionService(t),
		HistoryService:       NewMockHistoryService(t),
		StatsService:         NewMockStatsService(t),
	}
}

// MockAgentService is a mock implementation of AgentService. Upload bodies
// are reduced to their filename before matching.
type MockAgentService struct {
	mock.Mock
}

func NewMockAgentService(t *testing.T) *MockAgentService {
	m := &MockAgentService{}
	m.Test(t)
	return m
}

func (m *MockAgentService) Process(ctx context.Context, message string, upload *services.Upload) string {
	filename := ""
	if upload != nil {
		filename = upload.Filename
	}
	args := m.Called(ctx, message, filename)
	return args.String(0)
}

// MockTranscriptionService is a mock implementation of TranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

func NewMockTranscriptionService(t *testing.T) *MockTranscriptionService {
	m := &MockTranscriptionService{}
	m.Test(t)
	return m
}

func (m *MockTranscriptionService) Upload(ctx context.Context, upload services.Upload, language string) (*dto.UploadResponse, error) {
	args := m.Called(ctx, upload.Filename, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

// MockHistoryService is a mock implementation of HistoryService
type MockHistoryService struct {
	mock.Mock
}

func NewMockHistoryService(t *testing.T) *MockHistoryService {
	m := &MockHistoryService{}
	m.Test(t)
	return m
}

func (m *MockHistoryService) History(ctx context.Context, query dto.HistoryQuery) (*dto.HistoryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HistoryResponse), args.Error(1)
}

func (m *MockHistoryService) Download(ctx context.Context, format string) (*services.Download, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Download), args.Error(1)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func NewMockStatsService(t *testing.T) *MockStatsService {
	m := &MockStatsService{}
	m.Test(t)
	return m
}

func (m *MockStatsService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatsResponse), args.Error(1)
}

var (
	_ services.AgentService         = (*MockAgentService)(nil)
	_ services.TranscriptionService = (*MockTranscriptionService)(nil)
	_ services.HistoryService       = (*MockHistoryService)(nil)
	_ services.StatsService         = (*MockStatsService)(nil)
)
