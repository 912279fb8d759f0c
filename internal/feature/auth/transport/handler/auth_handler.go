// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"notes_backend/internal/feature/auth/domain/entity"
	"notes_backend/internal/feature/auth/transport/http/dto"
	"notes_backend/internal/feature/auth/usecase"
	jwtmw "notes_backend/internal/platform/jwt"
	"notes_backend/internal/shared/apperr"
)

// errLoginFields is returned when the signin body lacks email or password.
var errLoginFields = apperr.New(apperr.BadRequest, "Email and password are required")

// AuthUsecase defines the auth operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Signup registers a new user.
	Signup(ctx context.Context, username, email, password string) error
	// Login authenticates a user and returns a session token on success.
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	// CurrentUser returns the user behind an already verified identity.
	CurrentUser(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler handles HTTP requests for authentication.
// Errors are recorded with c.Error and rendered by the error handler middleware.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(apperr.Wrap(apperr.BadRequest, usecase.ErrMissingFields.Message, err))
		return
	}
	if err := h.auth.Signup(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.MessageRes{Success: true, Message: "User created successfully"})
}

// Login handles POST /api/auth/signin.
// The token is returned in the body; clients send it back as a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(apperr.Wrap(apperr.BadRequest, errLoginFields.Message, err))
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{
		Success: true,
		Message: "Login successful!",
		Token:   token,
		User:    dto.NewUserRes(user),
	})
}

// Signout handles GET /api/auth/signout.
// Tokens are stateless, so signing out only tells the client to discard its token.
func (h *AuthHandler) Signout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageRes{Success: true, Message: "Logged out successfully"})
}

// Check handles GET /api/auth/check behind AuthRequired.
func (h *AuthHandler) Check(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		_ = c.Error(usecase.ErrInvalidToken)
		return
	}
	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		// A valid token for a user that no longer exists is treated as an invalid session.
		if apperr.KindOf(err) == apperr.NotFound {
			err = apperr.Wrap(apperr.Unauthorized, usecase.ErrInvalidToken.Message, err)
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckRes{
		Success: true,
		Message: "User is authenticated",
		User:    dto.NewUserRes(user),
	})
}
