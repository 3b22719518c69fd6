package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	apierrors "voice-transcriber/internal/api/errors"
)

// ErrorHandler recovers panics and renders them as APIError responses
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *apierrors.APIError
		switch err := recovered.(type) {
		case *apierrors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = apierrors.NewInternalError("Internal server error")
		default:
			logger.Error("Unknown panic occurred",
				zap.String("recovered", fmt.Sprint(recovered)),
				zap.String("request_id", requestID),
			)
			apiErr = apierrors.NewInternalError("Internal server error")
		}

		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes an APIError response. Any other error is re-raised for ErrorHandler.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		apiErr.RequestID = c.GetString(RequestIDKey)
		_ = c.Error(err)
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
		return
	}

	panic(err)
}

// NotFound renders unknown routes as APIError responses
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleError(c, apierrors.NewNotFoundError(fmt.Sprintf("route %s %s", c.Request.Method, c.Request.URL.Path)))
	}
}
