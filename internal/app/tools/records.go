package tools

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"scribe/internal/app/model"
)

const (
	defaultSaveModel  = "whisper-base"
	defaultQueryLimit = 10
	previewRunes      = 100
)

var saveRecordDescriptor = ToolDescriptor{
	Name:        SaveRecord,
	Description: "Save an already available transcription to the history.",
	Parameters: []Parameter{
		{Name: "filename", Type: TypeString, Required: true, Description: "Name of the audio file"},
		{Name: "text", Type: TypeString, Required: true, Description: "Transcribed text"},
		{Name: "model", Type: TypeString, Default: defaultSaveModel, Description: "Model used for the transcription"},
		{Name: "duration", Type: TypeNumber, Description: "Processing time in seconds"},
	},
}

type saveRecordArgs struct {
	Filename string   `mapstructure:"filename" validate:"required"`
	Text     string   `mapstructure:"text" validate:"required"`
	Model    string   `mapstructure:"model" validate:"required"`
	Duration *float64 `mapstructure:"duration" validate:"omitempty,gte=0"`
}

func (r *Registry) saveRecord(ctx context.Context, in saveRecordArgs) (string, error) {
	total, err := r.store.Append(ctx, model.TranscriptionRecord{
		Timestamp:         r.now(),
		Filename:          in.Filename,
		DurationSeconds:   in.Duration,
		Model:             in.Model,
		TranscriptionText: in.Text,
	})
	if err != nil {
		return "", err
	}
	r.logger.Info("transcription saved", zap.String("filename", in.Filename), zap.Int("total", total))

	return fmt.Sprintf("Transcription of %s saved to history (%d records total).", in.Filename, total), nil
}

var queryRecordsDescriptor = ToolDescriptor{
	Name:        QueryRecords,
	Description: "Search the transcription history, newest first.",
	Parameters: []Parameter{
		{Name: "search", Type: TypeString, Description: "Case-insensitive text to look for in transcriptions"},
		{Name: "limit", Type: TypeInteger, Default: defaultQueryLimit, Description: "Maximum number of results (1-100)"},
	},
}

type queryRecordsArgs struct {
	Search string `mapstructure:"search"`
	Limit  int    `mapstructure:"limit" validate:"gte=1,lte=100"`
}

func (r *Registry) queryRecords(ctx context.Context, in queryRecordsArgs) (string, error) {
	records, err := r.store.Query(ctx, in.Search, in.Limit)
	if err != nil {
		return "", err
	}

	if len(records) == 0 {
		if in.Search == "" {
			return "No transcriptions saved yet.", nil
		}
		return fmt.Sprintf("No transcriptions match %q.", in.Search), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d transcription(s):\n", len(records))
	for i, rec := range records {
		fmt.Fprintf(&b, "\n%d. [%s] %s (%s)\n   Duration: %s\n   %s\n", i+1, rec.FormattedTimestamp(), rec.Filename, rec.Model, formatDuration(rec.DurationSeconds), preview(rec.TranscriptionText))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func formatDuration(seconds *float64) string {
	if seconds == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1fs", *seconds)
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	return string([]rune(text)[:previewRunes]) + "..."
}
