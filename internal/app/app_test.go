package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/internal/app/agent"
	"scribe/internal/app/api"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Environment: "test",
		LogLevel:    "error",
		LLM:         config.LLMConfig{Provider: config.ProviderGroq, KeyEnv: "GROQ_API_KEY"},
		Deepgram:    config.DeepgramConfig{BaseURL: config.DefaultDeepgramBaseURL},
		Storage: config.StorageConfig{
			UploadDir: filepath.Join(dir, "uploads"),
			CSVPath:   filepath.Join(dir, "history.csv"),
		},
		Redis: config.RedisConfig{Channel: config.DefaultRedisChannel},
	}
}

func TestInitializeApplication_KeywordFallback(t *testing.T) {
	cfg := testConfig(t)

	application, cleanup, err := InitializeApplication(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.FileExists(t, cfg.Storage.CSVPath)
	assert.DirExists(t, cfg.Storage.UploadDir)
	assert.Len(t, application.Tools.List(), 3)

	reply := application.Agent.Run(context.Background(), agent.Request{Message: "show my history"})
	assert.Equal(t, "No transcriptions saved yet.", reply)

	reply = application.Agent.Run(context.Background(), agent.Request{Message: "hello"})
	assert.Equal(t, agent.HelpText, reply)
}

func TestInitializeApplication_WithRedis(t *testing.T) {
	redis := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.Addr = redis.Addr()

	_, cleanup, err := InitializeApplication(context.Background(), cfg)
	require.NoError(t, err)
	cleanup()
}

func TestInitializeApplication_UnreachableRedisDegrades(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.Addr = "127.0.0.1:1"

	_, cleanup, err := InitializeApplication(context.Background(), cfg)
	require.NoError(t, err)
	cleanup()
}

func TestApplication_NewServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	application, cleanup, err := InitializeApplication(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer cleanup()

	srv := application.NewServer("127.0.0.1:0", "test")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"api_key_configured":false`)

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInitializeApplication_PlaceholderDeepgramKeyStaysLocal(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.Deepgram.APIKey = "your_api_key_here"
	cfg.Deepgram.BaseURL = server.URL

	application, cleanup, err := InitializeApplication(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	_, err = application.Transcriber.Transcribe(context.Background(),
		api.Audio{Filename: "sample.wav", Body: strings.NewReader("RIFF")}, "nova-2", "es")
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	assert.Equal(t, int32(0), calls.Load())
}
