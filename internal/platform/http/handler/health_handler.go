// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check probes one dependency of the service, such as the database.
type Check func(ctx context.Context) error

// Root answers GET / so a browser or load balancer can see the API is up.
func Root(c *gin.Context) {
	c.String(http.StatusOK, "API is running...")
}

// Health returns the /healthz handler. Each named check runs on GET and HEAD;
// any failure turns the response into 503.
func Health(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Explicitly prevent caching
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		failed := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				slog.Warn("health check failed", "check", name, "error", err)
				status = http.StatusServiceUnavailable
				failed[name] = err.Error()
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		if status != http.StatusOK {
			c.JSON(status, gin.H{"status": "unavailable", "failed": failed})
			return
		}
		c.JSON(status, gin.H{"status": "ok"})
	}
}
