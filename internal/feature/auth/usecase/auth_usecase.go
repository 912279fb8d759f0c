// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"notes_backend/internal/feature/auth/domain/entity"
	"notes_backend/internal/shared/apperr"
)

const (
	// minPasswordLength defines the minimum number of characters in a password.
	minPasswordLength = 6
	// maxPasswordBytes is the longest input bcrypt accepts.
	maxPasswordBytes = 72
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	// It returns ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user with the given normalized email.
	// It returns ErrUserNotFound if no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user with the given ID.
	// It returns ErrUserNotFound if no user matches.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// TokenManager mints and verifies session tokens.
type TokenManager interface {
	// GenerateToken returns a signed, time-bound token asserting userID.
	GenerateToken(userID string) (string, error)
	// ParseToken verifies the token and returns the user ID it asserts.
	ParseToken(token string) (string, error)
}

// AuthUsecase implements registration, authentication and token verification.
type AuthUsecase struct {
	users  UserRepository
	tokens TokenManager
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenManager) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignup(username, email, password string) error {
	if strings.TrimSpace(username) == "" || email == "" || password == "" {
		return ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// Signup registers a new user with a hashed password.
func (u *AuthUsecase) Signup(ctx context.Context, username, email, password string) error {
	email = NormalizeEmail(email)
	if err := validateSignup(username, email, password); err != nil {
		return err
	}

	existing, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, ErrUserNotFound):
		return fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username: strings.TrimSpace(username),
		Email:    email,
		Password: string(hashed),
	}
	return u.users.Create(ctx, user)
}

// Login authenticates a user and returns a session token together with the user.
// Unknown emails yield ErrUserNotFound, wrong passwords ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", nil, err
	}

	// CompareHashAndPassword compares in constant time.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// VerifyToken checks a session token and returns the user ID it carries.
func (u *AuthUsecase) VerifyToken(_ context.Context, token string) (string, error) {
	userID, err := u.tokens.ParseToken(token)
	if err != nil || userID == "" {
		return "", apperr.Wrap(apperr.Unauthorized, ErrInvalidToken.Message, err)
	}
	return userID, nil
}

// CurrentUser loads the public profile of an already verified user.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}
