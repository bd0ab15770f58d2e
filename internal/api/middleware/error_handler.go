package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scribe/internal/api/errors"
)

// ErrorHandler recovers panics into a JSON internal error.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		logger.Error("Unhandled panic",
			zap.Any("recovered", recovered),
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)

		c.AbortWithStatusJSON(500, &errors.APIError{
			Kind:      errors.KindInternal,
			Detail:    "Internal server error",
			RequestID: requestID,
		})
	})
}

// HandleError writes err as a JSON APIError and aborts the request.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := errors.FromError(err)
	apiErr.RequestID = c.GetString(RequestIDKey)
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
