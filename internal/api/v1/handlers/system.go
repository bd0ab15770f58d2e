package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"scribe/internal/api/v1/dto"
)

// SystemHandler serves the informational endpoints.
type SystemHandler struct {
	version            string
	deepgramConfigured bool
	clock              func() time.Time
}

func NewSystemHandler(version string, deepgramConfigured bool, clock func() time.Time) *SystemHandler {
	if clock == nil {
		clock = time.Now
	}
	return &SystemHandler{version: version, deepgramConfigured: deepgramConfigured, clock: clock}
}

// Root handles GET /
//
// @Summary API information
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":       "Audio Transcription API",
		"version":       h.version,
		"documentation": "/swagger/index.html",
		"endpoints": gin.H{
			"agent":    "/agent - Routes your message to the right action",
			"upload":   "/upload - Direct transcription of an uploaded file",
			"history":  "/history - Query the transcription history",
			"download": "/download - Download the history as CSV or XLSX",
			"stats":    "/stats - History statistics",
			"health":   "/health - Health check",
			"metrics":  "/metrics - Prometheus metrics",
		},
	})
}

// Health handles GET /health
//
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:           "healthy",
		Timestamp:        h.clock().Format(time.RFC3339),
		APIKeyConfigured: h.deepgramConfigured,
	})
}
