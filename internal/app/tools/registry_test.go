package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scribe/internal/app/api"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/model"
	"scribe/internal/app/testutil"
)

func TestParseToolName(t *testing.T) {
	for _, name := range []string{"transcribe_audio", "save_record", "query_records"} {
		parsed, err := ParseToolName(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(parsed))
	}

	_, err := ParseToolName("delete_everything")
	assert.ErrorIs(t, err, apperrors.ErrUnknownTool)
}

func TestRegistry_ListAndGet(t *testing.T) {
	registry := NewRegistry(testutil.NewMockTranscriber(t), testutil.NewMockRecordStore(t))

	descriptors := registry.List()
	require.Len(t, descriptors, 3)
	assert.Equal(t, TranscribeAudio, descriptors[0].Name)
	assert.Equal(t, SaveRecord, descriptors[1].Name)
	assert.Equal(t, QueryRecords, descriptors[2].Name)
	assert.Equal(t, []string{"audio_file"}, descriptors[0].RequiredNames())
	assert.Equal(t, []string{"filename", "text"}, descriptors[1].RequiredNames())
	assert.Empty(t, descriptors[2].RequiredNames())

	d, err := registry.Get(SaveRecord)
	require.NoError(t, err)
	assert.Equal(t, SaveRecord, d.Name)

	_, err = registry.Get("missing")
	assert.ErrorIs(t, err, apperrors.ErrUnknownTool)
}

func TestInvoke_UnknownTool(t *testing.T) {
	registry := NewRegistry(testutil.NewMockTranscriber(t), testutil.NewMockRecordStore(t))

	_, err := registry.Invoke(context.Background(), "nope", map[string]any{})
	assert.ErrorIs(t, err, apperrors.ErrUnknownTool)
}

func TestSaveRecord(t *testing.T) {
	testCases := []struct {
		name      string
		args      map[string]any
		wantErr   error
		wantModel string
		wantDur   *float64
	}{
		{
			name:      "defaults applied",
			args:      map[string]any{"filename": "a.mp3", "text": "hola"},
			wantModel: "whisper-base",
		},
		{
			name:      "all fields",
			args:      map[string]any{"filename": "a.mp3", "text": "hola", "model": "deepgram-nova", "duration": 2.5},
			wantModel: "deepgram-nova",
			wantDur:   model.Float64(2.5),
		},
		{
			name:      "numeric string duration is coerced",
			args:      map[string]any{"filename": "a.mp3", "text": "hola", "duration": "4"},
			wantModel: "whisper-base",
			wantDur:   model.Float64(4),
		},
		{
			name:      "undeclared arguments are ignored",
			args:      map[string]any{"filename": "a.mp3", "text": "hola", "mood": "happy"},
			wantModel: "whisper-base",
		},
		{name: "missing text", args: map[string]any{"filename": "a.mp3"}, wantErr: apperrors.ErrArgumentValidation},
		{name: "null text", args: map[string]any{"filename": "a.mp3", "text": nil}, wantErr: apperrors.ErrArgumentValidation},
		{name: "empty text", args: map[string]any{"filename": "a.mp3", "text": ""}, wantErr: apperrors.ErrArgumentValidation},
		{name: "missing filename", args: map[string]any{"text": "hola"}, wantErr: apperrors.ErrArgumentValidation},
		{name: "negative duration", args: map[string]any{"filename": "a.mp3", "text": "hola", "duration": -1}, wantErr: apperrors.ErrArgumentValidation},
		{name: "non-numeric duration", args: map[string]any{"filename": "a.mp3", "text": "hola", "duration": "long"}, wantErr: apperrors.ErrArgumentValidation},
		{name: "object as text", args: map[string]any{"filename": "a.mp3", "text": map[string]any{"x": 1}}, wantErr: apperrors.ErrArgumentValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := testutil.NewCSVStore(t)
			registry := NewRegistry(testutil.NewMockTranscriber(t), store, WithClock(testutil.FixedClock()))

			out, err := registry.Invoke(context.Background(), SaveRecord, tc.args)

			records, allErr := store.All(context.Background())
			require.NoError(t, allErr)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, records, "rejected arguments must not append")
				return
			}

			require.NoError(t, err)
			assert.Contains(t, out, "a.mp3")
			assert.Contains(t, out, "1 records total")
			require.Len(t, records, 1)
			assert.Equal(t, "hola", records[0].TranscriptionText)
			assert.Equal(t, tc.wantModel, records[0].Model)
			assert.True(t, testutil.FixedTime.Equal(records[0].Timestamp))
			assert.Equal(t, tc.wantDur, records[0].DurationSeconds)
		})
	}
}

func TestQueryRecords(t *testing.T) {
	store := testutil.NewCSVStore(t, testutil.TestRecords...)
	registry := NewRegistry(testutil.NewMockTranscriber(t), store)
	ctx := context.Background()

	out, err := registry.Invoke(ctx, QueryRecords, map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, out, "Found 3 transcription(s)")
	assert.Less(t, strings.Index(out, "nota_de_voz.m4a"), strings.Index(out, "reunion_lunes.mp3"), "newest first")

	out, err = registry.Invoke(ctx, QueryRecords, map[string]any{"search": "HOLA", "limit": float64(5)})
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 transcription(s)")
	assert.Contains(t, out, "nota_de_voz.m4a")
	assert.Contains(t, out, "Duration: N/A")

	out, err = registry.Invoke(ctx, QueryRecords, map[string]any{"search": "reunión", "limit": "010"})
	require.NoError(t, err)
	assert.Contains(t, out, "Duration: 3.5s")

	out, err = registry.Invoke(ctx, QueryRecords, map[string]any{"search": "adios"})
	require.NoError(t, err)
	assert.Equal(t, `No transcriptions match "adios".`, out)

	for _, limit := range []any{0, 101, 2.5, "many"} {
		_, err = registry.Invoke(ctx, QueryRecords, map[string]any{"limit": limit})
		assert.ErrorIs(t, err, apperrors.ErrArgumentValidation, "limit %v", limit)
	}
}

func TestQueryRecords_EmptyStoreAndPreview(t *testing.T) {
	store := testutil.NewCSVStore(t)
	registry := NewRegistry(testutil.NewMockTranscriber(t), store)
	ctx := context.Background()

	out, err := registry.Invoke(ctx, QueryRecords, nil)
	require.NoError(t, err)
	assert.Equal(t, "No transcriptions saved yet.", out)

	long := strings.Repeat("ñandú ", 30)
	_, err = registry.Invoke(ctx, SaveRecord, map[string]any{"filename": "long.mp3", "text": long})
	require.NoError(t, err)

	out, err = registry.Invoke(ctx, QueryRecords, nil)
	require.NoError(t, err)
	assert.Contains(t, out, string([]rune(long)[:100])+"...")
	assert.NotContains(t, out, long)
}

func TestTranscribeAudio_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteAudioFile(t, dir, "sample.wav", "RIFF")

	transcriber := testutil.NewMockTranscriber(t)
	transcriber.On("Transcribe", mock.Anything, "sample.wav", "nova-2", "").
		Return(&api.Result{Text: "hola mundo", Elapsed: 1234567 * time.Microsecond, Model: "deepgram-nova-2", Language: "es"}, nil).
		Once()

	store := testutil.NewCSVStore(t)
	registry := NewRegistry(transcriber, store, WithClock(testutil.FixedClock()))
	ctx := context.Background()

	out, err := registry.Invoke(ctx, TranscribeAudio, map[string]any{"audio_file": path})
	require.NoError(t, err)
	assert.Contains(t, out, "Text: hola mundo")
	assert.Contains(t, out, "Model: deepgram-nova-2")
	assert.Contains(t, out, "Language: es")
	assert.Contains(t, out, "Processing time: 1.23s")
	assert.Contains(t, out, "1 records total")
	assert.Equal(t, []byte("RIFF"), transcriber.Body("sample.wav"))
	transcriber.AssertExpectations(t)

	records, err := store.Query(ctx, "hola", 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hola mundo", records[0].TranscriptionText)
	assert.Equal(t, "sample.wav", records[0].Filename)
	assert.Equal(t, "deepgram-nova-2", records[0].Model)
	require.NotNil(t, records[0].DurationSeconds)
	assert.Equal(t, 1.235, *records[0].DurationSeconds)
}

func TestTranscribeAudio_NoSaveAndUploadDir(t *testing.T) {
	uploads := t.TempDir()
	testutil.WriteAudioFile(t, uploads, "clip.mp3", "ID3")

	transcriber := testutil.NewMockTranscriber(t)
	transcriber.On("Transcribe", mock.Anything, "clip.mp3", "base", "en").
		Return(&api.Result{Text: "hello", Model: "deepgram-base", Language: "en"}, nil)

	store := testutil.NewMockRecordStore(t)
	registry := NewRegistry(transcriber, store, WithUploadDir(uploads))

	out, err := registry.Invoke(context.Background(), TranscribeAudio, map[string]any{
		"audio_file": "clip.mp3",
		"model":      "base",
		"language":   "en",
		"save":       "false",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Text: hello")
	assert.NotContains(t, out, "records total")
	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestTranscribeAudio_ProviderFailureLeavesStoreUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteAudioFile(t, dir, "sample.wav", "RIFF")

	providerErr := &apperrors.ProviderError{Provider: "deepgram", StatusCode: 500, Body: "internal"}
	transcriber := testutil.NewMockTranscriber(t)
	transcriber.On("Transcribe", mock.Anything, "sample.wav", "nova-2", "es").Return(nil, providerErr)

	store := testutil.NewCSVStore(t, testutil.TestRecords...)
	registry := NewRegistry(transcriber, store)

	_, err := registry.Invoke(context.Background(), TranscribeAudio, map[string]any{"audio_file": path, "language": "es"})
	require.Error(t, err)
	var pe *apperrors.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 500, pe.StatusCode)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(testutil.TestRecords), count)
}

func TestTranscribeAudio_MissingFile(t *testing.T) {
	transcriber := testutil.NewMockTranscriber(t)
	registry := NewRegistry(transcriber, testutil.NewMockRecordStore(t), WithUploadDir(t.TempDir()))

	_, err := registry.Invoke(context.Background(), TranscribeAudio, map[string]any{"audio_file": filepath.Join("nowhere", "x.wav")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	transcriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTranscribeAudio_MissingAudioArgument(t *testing.T) {
	registry := NewRegistry(testutil.NewMockTranscriber(t), testutil.NewMockRecordStore(t))

	_, err := registry.Invoke(context.Background(), TranscribeAudio, map[string]any{"model": "nova-2"})
	assert.ErrorIs(t, err, apperrors.ErrArgumentValidation)
	assert.Contains(t, err.Error(), "audio_file is required")
}
