package uploads

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "scribe/internal/app/errors"
)

type recordingArchiver struct {
	paths []string
	names []string
	err   error
}

func (a *recordingArchiver) Archive(_ context.Context, path, originalName string) (string, error) {
	a.paths = append(a.paths, path)
	a.names = append(a.names, originalName)
	if a.err != nil {
		return "", a.err
	}
	return "uploads/key.mp3", nil
}

func TestStore_SaveKeepsBaseName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil, nil)
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "clip.mp3", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "clip.mp3", strings.NewReader("two"))
	require.NoError(t, err)

	assert.Equal(t, "clip.mp3", filepath.Base(first))
	assert.Equal(t, "clip.mp3", filepath.Base(second))
	assert.NotEqual(t, first, second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestStore_SaveStripsDirectories(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil, nil)
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "../../etc/voice.wav", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "voice.wav", filepath.Base(path))
	assert.Equal(t, store.Dir(), filepath.Dir(filepath.Dir(path)))
}

func TestStore_SaveRejectsEmptyName(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil, nil)
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "  "} {
		_, err := store.Save(context.Background(), name, strings.NewReader("x"))
		assert.ErrorIs(t, err, apperrors.ErrArgumentValidation, name)
	}
}

func TestStore_Remove(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil, nil)
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "clip.ogg", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(err))

	err = store.Remove(filepath.Join(t.TempDir(), "other", "clip.ogg"))
	assert.ErrorIs(t, err, apperrors.ErrArgumentValidation)
}

func TestStore_ArchiveFailureIsNotFatal(t *testing.T) {
	archiver := &recordingArchiver{err: errors.New("bucket offline")}
	store, err := NewStore(t.TempDir(), archiver, nil)
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "memo.m4a", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, []string{path}, archiver.paths)
	assert.Equal(t, []string{"memo.m4a"}, archiver.names)
}

func TestObjectKey(t *testing.T) {
	now := time.Unix(1716230730, 0)
	key := ObjectKey(now, "memo.M4A")

	assert.True(t, strings.HasPrefix(key, "uploads/1716230730-"), key)
	assert.True(t, strings.HasSuffix(key, ".M4A"), key)
	assert.Len(t, key, len("uploads/1716230730-")+8+len(".M4A"))
}
