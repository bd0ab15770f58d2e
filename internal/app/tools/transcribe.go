package tools

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"scribe/internal/app/api"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/model"
)

var transcribeAudioDescriptor = ToolDescriptor{
	Name:        TranscribeAudio,
	Description: "Transcribe an audio file to text using Deepgram and save the result to the history.",
	Parameters: []Parameter{
		{Name: "audio_file", Type: TypeString, Required: true, Description: "Path to the audio file to transcribe"},
		{Name: "model", Type: TypeString, Default: "nova-2", Description: "Deepgram model: nova-2, nova, base or enhanced"},
		{Name: "language", Type: TypeString, Description: "Language code such as es or en; detected automatically when omitted"},
		{Name: "save", Type: TypeBoolean, Default: true, Description: "Whether to append the transcription to the history"},
	},
}

type transcribeArgs struct {
	AudioFile string `mapstructure:"audio_file" validate:"required"`
	Model     string `mapstructure:"model" validate:"required"`
	Language  string `mapstructure:"language"`
	Save      bool   `mapstructure:"save"`
}

func (r *Registry) transcribeAudio(ctx context.Context, in transcribeArgs) (string, error) {
	path := r.resolveAudioPath(in.AudioFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NotFound("audio file", in.AudioFile)
		}
		return "", apperrors.ErrStorageIO.Wrap(err, "open audio file")
	}
	defer f.Close()

	filename := filepath.Base(path)
	result, err := r.transcriber.Transcribe(ctx, api.Audio{Filename: filename, Body: f}, in.Model, in.Language)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Transcription completed\n")
	fmt.Fprintf(&b, "File: %s\n", filename)
	fmt.Fprintf(&b, "Model: %s\n", result.Model)
	fmt.Fprintf(&b, "Language: %s\n", displayLanguage(result.Language))
	fmt.Fprintf(&b, "Processing time: %.2fs\n", result.Elapsed.Seconds())
	fmt.Fprintf(&b, "Text: %s", result.Text)

	if !in.Save {
		return b.String(), nil
	}

	total, err := r.store.Append(ctx, model.TranscriptionRecord{
		Timestamp:         r.now(),
		Filename:          filename,
		DurationSeconds:   model.Float64(roundSeconds(result.Elapsed.Seconds())),
		Model:             result.Model,
		TranscriptionText: result.Text,
	})
	if err != nil {
		return "", err
	}
	r.logger.Info("transcription saved", zap.String("filename", filename), zap.Int("total", total))

	fmt.Fprintf(&b, "\nSaved to history (%d records total).", total)
	return b.String(), nil
}

// resolveAudioPath falls back to the upload directory for relative paths
// that do not exist as given.
func (r *Registry) resolveAudioPath(path string) string {
	if filepath.IsAbs(path) || r.uploadDir == "" {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	candidate := filepath.Join(r.uploadDir, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}

func (r *Registry) now() time.Time {
	return r.clock().Truncate(time.Second)
}

func displayLanguage(language string) string {
	if language == "" {
		return "auto"
	}
	return language
}

// roundSeconds keeps millisecond precision.
func roundSeconds(s float64) float64 {
	return math.Round(s*1000) / 1000
}
