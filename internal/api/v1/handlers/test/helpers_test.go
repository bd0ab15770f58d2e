package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"scribe/internal/api/middleware"
	"scribe/internal/api/v1/routes"
	"scribe/internal/api/v1/services/servicetest"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *servicetest.MockServices) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())

	mockServices := servicetest.NewMockServices(t)
	routes.RegisterRoutes(router, &routes.ServiceContainer{
		AgentService:         mockServices.AgentService,
		TranscriptionService: mockServices.TranscriptionService,
		HistoryService:       mockServices.HistoryService,
		StatsService:         mockServices.StatsService,
	})
	return router, mockServices
}

// multipartBody builds a form with the given fields and, when filename is
// set, a "file" part.
func multipartBody(t *testing.T, fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
