package api

import (
	"context"
	"io"
	"time"
)

// Audio is one audio payload to transcribe. Filename is used for format
// checks and reporting only.
type Audio struct {
	Filename string
	Body     io.Reader
}

// Result is a successful transcription.
type Result struct {
	Text string
	// Elapsed is the wall-clock time of the provider call.
	Elapsed time.Duration
	// Model is the provider-qualified model name, e.g. "deepgram-nova-2".
	Model    string
	Language string
}

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio Audio, model string, language string) (*Result, error)
}
