package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/model"
)

// Header is the fixed column order of the history file.
var Header = []string{
	"timestamp",
	"filename",
	"duration_seconds",
	"model",
	"transcription_text",
}

// Store keeps transcription records in a single CSV file.
//
// All operations on one Store are serialized by a mutex, so concurrent
// appends never lose rows. Appends rewrite the whole file through a staging
// file in the same directory followed by a rename.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a Store backed by path, creating the file (header only) and
// its parent directories when they do not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.ErrStorageIO.Wrap(err, "create history directory")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeFile(path, nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, apperrors.ErrStorageIO.Wrap(err, "stat history file")
	}

	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Append adds record to the end of the history and returns the new total.
func (s *Store) Append(ctx context.Context, record model.TranscriptionRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if d := record.DurationSeconds; d != nil && *d < 0 {
		return 0, apperrors.ErrArgumentValidation.Withf("duration_seconds must be non-negative, got %v", *d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return 0, err
	}

	records = append(records, record)
	if err := writeFile(s.path, records); err != nil {
		return 0, err
	}

	return len(records), nil
}

// Query returns at most limit records matching filter, newest first.
func (s *Store) Query(ctx context.Context, filter string, limit int) ([]model.TranscriptionRecord, error) {
	if limit < 1 {
		return nil, apperrors.ErrArgumentValidation.Withf("limit must be a positive integer, got %d", limit)
	}

	records, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(filter)
	result := make([]model.TranscriptionRecord, 0, min(limit, len(records)))
	for i := len(records) - 1; i >= 0 && len(result) < limit; i-- {
		if needle == "" || strings.Contains(strings.ToLower(records[i].TranscriptionText), needle) {
			result = append(result, records[i])
		}
	}

	return result, nil
}

// All returns every stored record in append order.
func (s *Store) All(ctx context.Context) ([]model.TranscriptionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	records, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Export writes the header and every record, in append order, to w.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	records, err := s.All(ctx)
	if err != nil {
		return err
	}
	return Encode(w, records)
}

// read parses the backing file. Callers must hold s.mu.
func (s *Store) read() ([]model.TranscriptionRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperrors.ErrStorageIO.Wrap(err, "open history file")
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses CSV history content, header included.
func Decode(r io.Reader) ([]model.TranscriptionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.ErrStorageIO.Withf("history file has no header")
	}
	if err != nil {
		return nil, apperrors.ErrStorageIO.Wrap(err, "read history header")
	}
	for i, column := range Header {
		if strings.TrimPrefix(header[i], "\ufeff") != column {
			return nil, apperrors.ErrStorageIO.Withf("unexpected history header %q, want %q", strings.Join(header, ","), strings.Join(Header, ","))
		}
	}

	records := make([]model.TranscriptionRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.ErrStorageIO.Wrap(err, "read history row")
		}

		record, err := parseRow(row)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, apperrors.ErrStorageIO.Wrap(err, fmt.Sprintf("malformed history row at line %d", line))
		}
		records = append(records, record)
	}

	return records, nil
}

// Encode writes the header followed by records to w.
func Encode(w io.Writer, records []model.TranscriptionRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return apperrors.ErrStorageIO.Wrap(err, "write history header")
	}
	for _, record := range records {
		if err := writer.Write(formatRow(record)); err != nil {
			return apperrors.ErrStorageIO.Wrap(err, "write history row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.ErrStorageIO.Wrap(err, "flush history")
	}
	return nil
}

func parseRow(row []string) (model.TranscriptionRecord, error) {
	timestamp, err := time.ParseInLocation(model.TimestampLayout, row[0], time.Local)
	if err != nil {
		return model.TranscriptionRecord{}, fmt.Errorf("timestamp: %w", err)
	}

	var duration *float64
	if raw := strings.TrimSpace(row[2]); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.TranscriptionRecord{}, fmt.Errorf("duration_seconds: %w", err)
		}
		duration = &v
	}

	return model.TranscriptionRecord{
		Timestamp:         timestamp,
		Filename:          row[1],
		DurationSeconds:   duration,
		Model:             row[3],
		TranscriptionText: row[4],
	}, nil
}

func formatRow(record model.TranscriptionRecord) []string {
	duration := ""
	if record.DurationSeconds != nil {
		duration = strconv.FormatFloat(*record.DurationSeconds, 'f', -1, 64)
	}
	return []string{
		record.FormattedTimestamp(),
		record.Filename,
		duration,
		record.Model,
		record.TranscriptionText,
	}
}

// writeFile replaces path with the given records via a staging file.
func writeFile(path string, records []model.TranscriptionRecord) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.ErrStorageIO.Wrap(err, "create staging file")
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.ErrStorageIO.Wrap(err, "sync staging file")
	}
	if err := tmp.Close(); err != nil {
		return apperrors.ErrStorageIO.Wrap(err, "close staging file")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return apperrors.ErrStorageIO.Wrap(err, "chmod staging file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return apperrors.ErrStorageIO.Wrap(err, "replace history file")
	}
	return nil
}
