package transcribe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"scribe/internal/app/batch"
)

func TestReport(t *testing.T) {
	var out bytes.Buffer
	err := report(&out, []batch.Result{
		{File: "a.mp3", Output: "Transcription completed\nFile: a.mp3"},
		{File: "b.wav", Err: errors.New("Deepgram API error: 500 - boom")},
	})

	assert.EqualError(t, err, "1 of 2 files failed")
	assert.Contains(t, out.String(), "File: a.mp3")
	assert.Contains(t, out.String(), "b.wav: error: Deepgram API error: 500 - boom")

	out.Reset()
	assert.NoError(t, report(&out, []batch.Result{{File: "a.mp3", Output: "ok"}}))
}
