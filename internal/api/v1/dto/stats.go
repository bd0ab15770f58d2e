package dto

// StatsResponse summarises the history.
type StatsResponse struct {
	TotalTranscriptions    int      `json:"total_transcriptions"`
	TotalDurationSeconds   float64  `json:"total_duration_seconds"`
	AverageDurationSeconds float64  `json:"average_duration_seconds"`
	MostUsedModel          *string  `json:"most_used_model"`
	RecentFiles            []string `json:"recent_files"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}
