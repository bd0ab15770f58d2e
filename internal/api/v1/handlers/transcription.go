package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "scribe/internal/api/errors"
	"scribe/internal/api/middleware"
	"scribe/internal/api/v1/dto"
	"scribe/internal/api/v1/services"
)

// TranscriptionHandler handles direct transcription uploads
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{service: service}
}

// Upload handles POST /upload
//
// @Summary Upload and transcribe an audio file
// @Description Transcribes the file with Deepgram nova-2 and appends it to the history
// @Tags transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file"
// @Param language query string false "Language code" default(es)
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} errors.APIError "Missing file or unsupported format"
// @Failure 500 {object} errors.APIError "Provider, storage or configuration failure"
// @Router /upload [post]
func (h *TranscriptionHandler) Upload(c *gin.Context) {
	var query dto.UploadQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil || header.Filename == "" {
		middleware.HandleError(c, apierrors.NewBadRequestError("No file provided"))
		return
	}

	f, err := header.Open()
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("Invalid file upload: "+err.Error()))
		return
	}
	defer f.Close()

	response, err := h.service.Upload(c.Request.Context(), services.Upload{Filename: header.Filename, Body: f}, query.Language)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
