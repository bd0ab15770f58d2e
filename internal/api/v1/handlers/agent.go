package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "scribe/internal/api/errors"
	"scribe/internal/api/middleware"
	"scribe/internal/api/v1/dto"
	"scribe/internal/api/v1/services"
)

// AgentHandler handles the conversational endpoint
type AgentHandler struct {
	service services.AgentService
}

func NewAgentHandler(service services.AgentService) *AgentHandler {
	return &AgentHandler{service: service}
}

// Process handles POST /agent
//
// @Summary Ask the agent
// @Description Routes the message to one tool: transcribe an attached file, save a record or query the history.
// @Tags agent
// @Accept multipart/form-data
// @Produce plain
// @Param message formData string true "User message"
// @Param file formData file false "Audio file"
// @Success 200 {string} string "Agent reply"
// @Failure 422 {object} errors.APIError "Missing message"
// @Router /agent [post]
func (h *AgentHandler) Process(c *gin.Context) {
	var form dto.AgentForm
	if err := middleware.ValidateForm(c, &form); err != nil {
		middleware.HandleError(c, err)
		return
	}

	var upload *services.Upload
	header, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		middleware.HandleError(c, apierrors.NewBadRequestError("Invalid file upload: "+err.Error()))
		return
	default:
		f, err := header.Open()
		if err != nil {
			middleware.HandleError(c, apierrors.NewBadRequestError("Invalid file upload: "+err.Error()))
			return
		}
		defer f.Close()
		upload = &services.Upload{Filename: header.Filename, Body: f}
	}

	reply := h.service.Process(c.Request.Context(), form.Message, upload)
	c.String(http.StatusOK, reply)
}
