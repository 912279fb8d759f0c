// Package middleware holds gin middleware shared by every feature.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"notes_backend/internal/shared/apperr"
)

// ErrorResponse is the envelope written for every failed request.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// ErrorHandler translates the last error recorded with c.Error into the error envelope.
// It is the only place where errors become HTTP status codes.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		err := last.Err
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("request failed",
				"error", err,
				"method", c.Request.Method,
				"path", c.FullPath(),
			)
		}
		c.JSON(status, ErrorResponse{
			Success:    false,
			StatusCode: status,
			Message:    apperr.PublicMessage(err),
		})
	}
}
