package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scribe/internal/api/v1/dto"
	apperrors "scribe/internal/app/errors"
)

func TestStatsHandler_Stats(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		router, ms := setupTestRouter(t)
		ms.StatsService.On("Stats", mock.Anything).Return(&dto.StatsResponse{RecentFiles: []string{}}, nil)

		rec := serve(router, httptest.NewRequest(http.MethodGet, "/stats", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(0), body["total_transcriptions"])
		assert.Equal(t, float64(0), body["total_duration_seconds"])
		assert.Nil(t, body["most_used_model"])
		assert.Equal(t, []interface{}{}, body["recent_files"])
	})

	t.Run("storage failure", func(t *testing.T) {
		router, ms := setupTestRouter(t)
		ms.StatsService.On("Stats", mock.Anything).Return(nil, apperrors.ErrStorageIO.Withf("history unreadable"))

		rec := serve(router, httptest.NewRequest(http.MethodGet, "/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "history unreadable", decodeBody(t, rec)["detail"])
	})
}
