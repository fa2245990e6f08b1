package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"video2broll/internal/api/errors"
)

// ErrorHandler middleware handles errors consistently across the API
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString("request_id")

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
			apiErr.RequestID = requestID
		case error:
			// Log the original error for debugging
			logger.Error("Internal server error",
				"error", err.Error(),
				"request_id", requestID,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)

			// Return a generic internal error to the client
			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		default:
			logger.Error("Unknown panic occurred",
				"recovered", recovered,
				"request_id", requestID,
			)

			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		}

		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError is a helper function for handlers to return errors. It
// maps domain errors to their API representation; anything unmapped
// surfaces as an internal error.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := errors.FromDomain(err)
	apiErr.RequestID = c.GetString("request_id")
	if apiErr.Kind == errors.KindInternal {
		// The mapped message is opaque; keep the original in the gin
		// error list for the logging middleware.
		_ = c.Error(err)
	}
	c.Header("Content-Type", "application/json")
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
