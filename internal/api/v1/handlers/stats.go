package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scribe/internal/api/middleware"
	"scribe/internal/api/v1/services"
)

// StatsHandler handles statistics requests
type StatsHandler struct {
	service services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Stats handles GET /stats
//
// @Summary History statistics
// @Tags history
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 500 {object} errors.APIError "Storage failure"
// @Router /stats [get]
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
