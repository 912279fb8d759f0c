package usecase

import "notes_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = apperr.New(apperr.NotFound, "User not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = apperr.New(apperr.Conflict, "User already exists")

	// ErrInvalidCredentials is returned when the password does not match the stored hash.
	ErrInvalidCredentials = apperr.New(apperr.Unauthorized, "Wrong credentials")

	// ErrInvalidToken is returned when a session token fails signature or expiry checks.
	ErrInvalidToken = apperr.New(apperr.Unauthorized, "Token is not valid")

	// ErrMissingFields is returned when username, email or password is empty.
	ErrMissingFields = apperr.New(apperr.BadRequest, "Username, email and password are required")

	// ErrPasswordTooShort is returned when the password is shorter than minPasswordLength.
	ErrPasswordTooShort = apperr.New(apperr.BadRequest, "Password must be at least 6 characters long")

	// ErrPasswordTooLong is returned when the password exceeds maxPasswordBytes, the bcrypt input limit.
	ErrPasswordTooLong = apperr.New(apperr.BadRequest, "Password must be at most 72 bytes long")
)
