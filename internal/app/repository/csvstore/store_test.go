package csvstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "output", "history.csv"))
	require.NoError(t, err)
	return store
}

func record(ts time.Time, filename, text string) model.TranscriptionRecord {
	return model.TranscriptionRecord{
		Timestamp:         ts,
		Filename:          filename,
		DurationSeconds:   model.Float64(1.5),
		Model:             "deepgram-nova-2",
		TranscriptionText: text,
	}
}

var baseTime = time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local)

func TestOpen_CreatesHeaderOnlyFile(t *testing.T) {
	store := newTestStore(t)

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "timestamp,filename,duration_seconds,model,transcription_text\n", string(content))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOpen_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	existing := "timestamp,filename,duration_seconds,model,transcription_text\n" +
		"2024-01-01 10:00:00,a.mp3,,whisper-base,hello\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	store, err := Open(path)
	require.NoError(t, err)

	records, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a.mp3", records[0].Filename)
	assert.Nil(t, records[0].DurationSeconds)
}

func TestAppend_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := model.TranscriptionRecord{
		Timestamp:         baseTime,
		Filename:          "meeting, part 1.wav",
		DurationSeconds:   model.Float64(12.25),
		Model:             "deepgram-nova-2",
		TranscriptionText: "He said \"hola\",\nthen left.",
	}

	total, err := store.Append(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	got, err := store.Query(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, r.Timestamp.Equal(got[0].Timestamp))
	assert.Equal(t, r.Filename, got[0].Filename)
	require.NotNil(t, got[0].DurationSeconds)
	assert.Equal(t, *r.DurationSeconds, *got[0].DurationSeconds)
	assert.Equal(t, r.Model, got[0].Model)
	assert.Equal(t, r.TranscriptionText, got[0].TranscriptionText)
}

func TestAppend_AbsentDurationIsEmptyColumn(t *testing.T) {
	store := newTestStore(t)
	r := record(baseTime, "a.mp3", "text")
	r.DurationSeconds = nil

	_, err := store.Append(context.Background(), r)
	require.NoError(t, err)

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), "2024-03-10 09:30:00,a.mp3,,deepgram-nova-2,text\n")
}

func TestAppend_RejectsNegativeDuration(t *testing.T) {
	store := newTestStore(t)
	r := record(baseTime, "a.mp3", "text")
	r.DurationSeconds = model.Float64(-1)

	_, err := store.Append(context.Background(), r)
	assert.ErrorIs(t, err, apperrors.ErrArgumentValidation)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	texts := []string{
		"Hola mundo",
		"good morning",
		"HOLA otra vez",
		"nothing here",
		"y hola de nuevo",
	}
	for i, text := range texts {
		_, err := store.Append(ctx, record(baseTime.Add(time.Duration(i)*time.Minute), fmt.Sprintf("f%d.mp3", i), text))
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		filter    string
		limit     int
		wantFiles []string
	}{
		{name: "no filter returns newest first", filter: "", limit: 10, wantFiles: []string{"f4.mp3", "f3.mp3", "f2.mp3", "f1.mp3", "f0.mp3"}},
		{name: "limit keeps the newest", filter: "", limit: 2, wantFiles: []string{"f4.mp3", "f3.mp3"}},
		{name: "case-insensitive filter", filter: "hola", limit: 10, wantFiles: []string{"f4.mp3", "f2.mp3", "f0.mp3"}},
		{name: "filter truncated to limit", filter: "HOLA", limit: 2, wantFiles: []string{"f4.mp3", "f2.mp3"}},
		{name: "no match is empty", filter: "adios", limit: 10, wantFiles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.filter, tt.limit)
			require.NoError(t, err)
			files := make([]string, 0, len(got))
			for _, r := range got {
				files = append(files, r.Filename)
			}
			assert.Equal(t, tt.wantFiles, files)
		})
	}
}

func TestQuery_EmptyStore(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Query(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuery_InvalidLimit(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Query(context.Background(), "", 0)
	assert.ErrorIs(t, err, apperrors.ErrArgumentValidation)
}

func TestStorageErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "wrong header", content: "a,b,c,d,e\n"},
		{name: "wrong column count", content: "timestamp,filename,duration_seconds,model,transcription_text\nx,y\n"},
		{name: "bad timestamp", content: "timestamp,filename,duration_seconds,model,transcription_text\nyesterday,a.mp3,,m,t\n"},
		{name: "bad duration", content: "timestamp,filename,duration_seconds,model,transcription_text\n2024-01-01 10:00:00,a.mp3,long,m,t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "history.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			store, err := Open(path)
			require.NoError(t, err)

			_, err = store.Query(context.Background(), "", 10)
			assert.ErrorIs(t, err, apperrors.ErrStorageIO)

			_, err = store.Append(context.Background(), record(baseTime, "a.mp3", "t"))
			assert.ErrorIs(t, err, apperrors.ErrStorageIO)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(content), "failed append must not touch the file")
		})
	}
}

func TestStorageErrors_MissingFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.Remove(store.Path()))

	_, err := store.Append(context.Background(), record(baseTime, "a.mp3", "t"))
	assert.ErrorIs(t, err, apperrors.ErrStorageIO)
}

func TestExport_AppendOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, err := store.Append(ctx, record(baseTime, "first.mp3", "one"))
	require.NoError(t, err)
	_, err = store.Append(ctx, record(baseTime.Add(time.Second), "second.mp3", "two"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.Export(ctx, &buf))

	assert.Equal(t,
		"timestamp,filename,duration_seconds,model,transcription_text\n"+
			"2024-03-10 09:30:00,first.mp3,1.5,deepgram-nova-2,one\n"+
			"2024-03-10 09:30:01,second.mp3,1.5,deepgram-nova-2,two\n",
		buf.String())
}

func TestAppend_Concurrent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Append(ctx, record(baseTime, fmt.Sprintf("f%d.mp3", i), "concurrent"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers, count)
}
