package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "scribe/internal/app/errors"
)

func setBootstrapEnv(t *testing.T) {
	dir := t.TempDir()
	for _, key := range []string{"LLM_PROVIDER", "GROQ_API_KEY", "REDIS_ADDR", "MINIO_ENDPOINT", "LOG_LEVEL", "PORT", "LLM_TIMEOUT", "DEEPGRAM_TIMEOUT"} {
		t.Setenv(key, "")
	}
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("CSV_PATH", filepath.Join(dir, "history.csv"))
}

func TestBootstrap_RequireLLM(t *testing.T) {
	setBootstrapEnv(t)

	_, _, err := Bootstrap(context.Background(), BootstrapOptions{RequireLLM: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestBootstrap_Quiet(t *testing.T) {
	setBootstrapEnv(t)

	application, cleanup, err := Bootstrap(context.Background(), BootstrapOptions{Quiet: true})
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, "warn", application.Config.LogLevel)

	verbose, cleanupVerbose, err := Bootstrap(context.Background(), BootstrapOptions{Quiet: true, Verbose: true})
	require.NoError(t, err)
	defer cleanupVerbose()
	assert.Equal(t, "debug", verbose.Config.LogLevel)
}
