package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "scribe/internal/app/errors"
)

func TestFromError(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedKind   ErrorKind
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "argument validation",
			err:            apperrors.RequiredField("message"),
			expectedKind:   KindValidation,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedDetail: "message is required",
		},
		{
			name:           "unsupported format",
			err:            apperrors.ErrUnsupportedFormat.Withf("\".txt\" is not supported"),
			expectedKind:   KindBadRequest,
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "\".txt\" is not supported",
		},
		{
			name:           "not found",
			err:            apperrors.NotFound("audio file", "x.mp3"),
			expectedKind:   KindNotFound,
			expectedStatus: http.StatusNotFound,
			expectedDetail: "audio file not found: x.mp3",
		},
		{
			name:           "missing deepgram key",
			err:            apperrors.ErrConfiguration.Withf("DEEPGRAM_API_KEY not configured"),
			expectedKind:   KindInternal,
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "DEEPGRAM_API_KEY not configured",
		},
		{
			name:           "provider failure",
			err:            fmt.Errorf("transcribe: %w", &apperrors.ProviderError{Provider: "Deepgram", StatusCode: 500, Body: "boom"}),
			expectedKind:   KindInternal,
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "Deepgram API error: 500 - boom",
		},
		{
			name:           "api error passes through",
			err:            NewNotFoundError("No transcriptions found"),
			expectedKind:   KindNotFound,
			expectedStatus: http.StatusNotFound,
			expectedDetail: "No transcriptions found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := FromError(tc.err)
			assert.Equal(t, tc.expectedKind, apiErr.Kind)
			assert.Equal(t, tc.expectedStatus, apiErr.HTTPStatus())
			assert.Equal(t, tc.expectedDetail, apiErr.Detail)
		})
	}

	assert.Nil(t, FromError(nil))
}
