package repository

import (
	"context"
	"io"

	"scribe/internal/app/model"
)

// RecordStore is the durable, append-only transcription history.
type RecordStore interface {
	// Append stores one record and returns the new total record count.
	Append(ctx context.Context, record model.TranscriptionRecord) (int, error)

	// Query returns at most limit records whose text contains filter
	// (case-insensitive, empty filter matches all), newest first.
	Query(ctx context.Context, filter string, limit int) ([]model.TranscriptionRecord, error)

	// All returns every record in append order.
	All(ctx context.Context) ([]model.TranscriptionRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Export writes every record, in append order, as CSV.
	Export(ctx context.Context, w io.Writer) error
}
