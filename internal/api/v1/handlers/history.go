package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"scribe/internal/api/middleware"
	"scribe/internal/api/v1/dto"
	"scribe/internal/api/v1/services"
)

// HistoryHandler handles history queries and downloads
type HistoryHandler struct {
	service services.HistoryService
}

func NewHistoryHandler(service services.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// History handles GET /history
//
// @Summary Query the transcription history
// @Tags history
// @Produce json
// @Param search query string false "Case-insensitive text filter"
// @Param limit query int false "Maximum number of results" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.HistoryResponse "Matching records, newest first"
// @Failure 422 {object} errors.APIError "Limit out of range"
// @Failure 500 {object} errors.APIError "Storage failure"
// @Router /history [get]
func (h *HistoryHandler) History(c *gin.Context) {
	var query dto.HistoryQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.History(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Download handles GET /download
//
// @Summary Download the history
// @Tags history
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "Export format" Enums(csv,xlsx) default(csv)
// @Success 200 {file} file
// @Failure 404 {object} errors.APIError "History is empty"
// @Failure 422 {object} errors.APIError "Unsupported format"
// @Router /download [get]
func (h *HistoryHandler) Download(c *gin.Context) {
	var query dto.DownloadQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	download, err := h.service.Download(c.Request.Context(), query.Format)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", download.Filename))
	c.Data(http.StatusOK, download.ContentType, download.Data)
}
