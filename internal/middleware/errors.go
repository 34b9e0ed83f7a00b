// Package middleware holds the cross-cutting gin middleware: CORS and
// the single error-translation point for the whole API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/partwall/partwall-golang/internal/apperr"
)

// ErrorHandler is the one place errors become HTTP responses. Handlers
// attach errors with c.Error and abort; after the chain runs, the last
// attached error is classified and rendered as the JSON envelope.
// Internal detail is logged here and never reaches the client.
func ErrorHandler(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		appErr := apperr.Classify(err)

		if appErr.Code == apperr.CodeInternal {
			logger.Error().
				Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("unhandled error")
		}

		// A handler that already streamed a body (SSE) cannot get an
		// envelope anymore.
		if c.Writer.Written() {
			return
		}

		c.JSON(appErr.Status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}
