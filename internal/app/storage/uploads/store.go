package uploads

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "scribe/internal/app/errors"
)

// Archiver copies a staged upload to long-term storage and returns its key.
type Archiver interface {
	Archive(ctx context.Context, path, originalName string) (string, error)
}

// Store stages uploaded audio on local disk. Every upload gets its own
// subdirectory so concurrent uploads with the same name never collide, and
// the file keeps its original base name.
type Store struct {
	dir      string
	archiver Archiver
	logger   *zap.Logger
}

// NewStore creates the staging directory. archiver and logger may be nil.
func NewStore(dir string, archiver Archiver, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.ErrStorageIO.Wrap(err, "create upload directory")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, archiver: archiver, logger: logger}, nil
}

// Dir returns the staging directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes r under the base name of filename and returns the staged path.
func (s *Store) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name, err := SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	slot := filepath.Join(s.dir, uuid.New().String()[:8])
	if err := os.MkdirAll(slot, 0o755); err != nil {
		return "", apperrors.ErrStorageIO.Wrap(err, "create upload slot")
	}
	path := filepath.Join(slot, name)

	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.ErrStorageIO.Wrap(err, "create upload file")
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.RemoveAll(slot)
		return "", apperrors.ErrStorageIO.Wrap(err, "write upload file")
	}
	if err := f.Close(); err != nil {
		_ = os.RemoveAll(slot)
		return "", apperrors.ErrStorageIO.Wrap(err, "close upload file")
	}

	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, path, name)
		if err != nil {
			s.logger.Warn("failed to archive upload", zap.String("path", path), zap.Error(err))
		} else {
			s.logger.Debug("upload archived", zap.String("path", path), zap.String("key", key))
		}
	}

	return path, nil
}

// Remove deletes a staged upload and its slot directory.
func (s *Store) Remove(path string) error {
	slot := filepath.Dir(path)
	if filepath.Dir(slot) != filepath.Clean(s.dir) {
		return apperrors.ErrArgumentValidation.Withf("%s is not a staged upload", path)
	}
	if err := os.RemoveAll(slot); err != nil {
		return apperrors.ErrStorageIO.Wrap(err, "remove upload")
	}
	return nil
}

// SanitizeFilename strips any directory part from a client-supplied name.
func SanitizeFilename(filename string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" || name == ".." || strings.TrimSpace(name) == "" {
		return "", apperrors.ErrArgumentValidation.Withf("invalid upload filename %q", filename)
	}
	return name, nil
}
