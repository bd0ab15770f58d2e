package testutil

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"scribe/internal/app/api"
)

// MockTranscriber is a testify mock of api.Transcriber. It drains and
// records the audio body of every call so tests can assert on it.
type MockTranscriber struct {
	mock.Mock

	mu     sync.Mutex
	bodies map[string][]byte
}

// NewMockTranscriber creates a MockTranscriber bound to t.
func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{bodies: make(map[string][]byte)}
	m.Test(t)
	return m
}

// Transcribe implements api.Transcriber.
func (m *MockTranscriber) Transcribe(ctx context.Context, audio api.Audio, model string, language string) (*api.Result, error) {
	if audio.Body != nil {
		data, _ := io.ReadAll(audio.Body)
		m.mu.Lock()
		m.bodies[audio.Filename] = data
		m.mu.Unlock()
	}

	args := m.Called(ctx, audio.Filename, model, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Result), args.Error(1)
}

// Body returns the audio bytes received for filename.
func (m *MockTranscriber) Body(filename string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bodies[filename]
}
