// Package jwtmw provides session token primitives and the gin middleware that guards protected routes.
package jwtmw

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"notes_backend/internal/shared/apperr"
)

// ContextUserID is the gin context key holding the verified user ID.
const ContextUserID = "userID"

type ctxKey struct{}

// ErrMissingToken is returned when the Authorization header carries no bearer token.
var ErrMissingToken = apperr.New(apperr.Unauthorized, "Unauthorized, token missing")

// TokenVerifier verifies a bearer token and returns the identity it asserts.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only.
// Failures are recorded with c.Error and the chain is aborted; the error
// handler middleware renders the response.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			_ = c.Error(ErrMissingToken)
			c.Abort()
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenStr == "" {
			_ = c.Error(ErrMissingToken)
			c.Abort()
			return
		}

		userID, err := verifier.VerifyToken(c.Request.Context(), tokenStr)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// WithUserID returns a copy of ctx carrying the verified user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the user ID stored by AuthRequired.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// UserID returns the verified user ID of the current request.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
