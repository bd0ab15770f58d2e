package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scribe/internal/app/model"
	"scribe/internal/app/repository/csvstore"
)

// FixedTime is the reference instant used by fixtures and fixed clocks.
var FixedTime = time.Date(2024, 5, 20, 18, 45, 30, 0, time.Local)

// FixedClock returns a clock that always reports FixedTime.
func FixedClock() func() time.Time {
	return func() time.Time { return FixedTime }
}

// TestRecords provides sample history rows in append order.
var TestRecords = []model.TranscriptionRecord{
	{
		Timestamp:         time.Date(2024, 5, 18, 9, 0, 0, 0, time.Local),
		Filename:          "reunion_lunes.mp3",
		DurationSeconds:   model.Float64(3.5),
		Model:             "deepgram-nova-2",
		TranscriptionText: "Buenos días, empezamos la reunión del lunes.",
	},
	{
		Timestamp:         time.Date(2024, 5, 19, 11, 30, 0, 0, time.Local),
		Filename:          "podcast_intro.wav",
		DurationSeconds:   model.Float64(1.25),
		Model:             "deepgram-nova",
		TranscriptionText: "Welcome to the podcast, today we talk about audio.",
	},
	{
		Timestamp:         time.Date(2024, 5, 20, 16, 10, 0, 0, time.Local),
		Filename:          "nota_de_voz.m4a",
		DurationSeconds:   nil,
		Model:             "whisper-base",
		TranscriptionText: "Hola, recuerda comprar pan.",
	},
}

// NewCSVStore opens a store in a temporary directory, seeded with records.
func NewCSVStore(t *testing.T, records ...model.TranscriptionRecord) *csvstore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	if len(records) > 0 {
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, csvstore.Encode(f, records))
		require.NoError(t, f.Close())
	}

	store, err := csvstore.Open(path)
	require.NoError(t, err)
	return store
}

// WriteAudioFile creates a fake audio file and returns its path.
func WriteAudioFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
