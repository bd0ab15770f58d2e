package model

import "time"

// TimestampLayout is the on-disk and API format of TranscriptionRecord.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// TranscriptionRecord is one completed transcription in the history.
type TranscriptionRecord struct {
	Timestamp         time.Time `json:"timestamp"`
	Filename          string    `json:"filename"`
	DurationSeconds   *float64  `json:"duration_seconds"`
	Model             string    `json:"model"`
	TranscriptionText string    `json:"transcription_text"`
}

// FormattedTimestamp returns the timestamp in TimestampLayout.
func (r TranscriptionRecord) FormattedTimestamp() string {
	return r.Timestamp.Format(TimestampLayout)
}

// Float64 returns a pointer to v, for optional durations.
func Float64(v float64) *float64 {
	return &v
}
