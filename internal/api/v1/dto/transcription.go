package dto

import "scribe/internal/app/model"

// UploadQuery holds the query parameters of POST /upload.
type UploadQuery struct {
	Language string `form:"language,default=es"`
}

// UploadResponse is the body of a successful direct transcription.
type UploadResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	Filename      string  `json:"filename"`
	Transcription string  `json:"transcription"`
	Duration      float64 `json:"duration"`
	Timestamp     string  `json:"timestamp"`
}

// AgentForm holds the form fields of POST /agent. The optional audio file
// is read separately.
type AgentForm struct {
	Message string `form:"message" binding:"required"`
}

// HistoryQuery holds the query parameters of GET /history.
type HistoryQuery struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=10" binding:"gte=1,lte=100"`
}

// HistoryItem is one record as returned by the API.
type HistoryItem struct {
	Timestamp         string   `json:"timestamp"`
	Filename          string   `json:"filename"`
	DurationSeconds   *float64 `json:"duration_seconds"`
	Model             string   `json:"model"`
	TranscriptionText string   `json:"transcription_text"`
}

// HistoryResponse is the body of GET /history.
type HistoryResponse struct {
	Success        bool          `json:"success"`
	TotalCount     int           `json:"total_count"`
	Transcriptions []HistoryItem `json:"transcriptions"`
}

// NewHistoryItem converts a stored record.
func NewHistoryItem(r model.TranscriptionRecord) HistoryItem {
	return HistoryItem{
		Timestamp:         r.FormattedTimestamp(),
		Filename:          r.Filename,
		DurationSeconds:   r.DurationSeconds,
		Model:             r.Model,
		TranscriptionText: r.TranscriptionText,
	}
}
