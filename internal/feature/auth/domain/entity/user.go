// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the opaque unique identifier assigned by the store on creation.
	ID string `gorm:"primaryKey;size:36"`

	// Username is the display name chosen at signup.
	Username string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It is stored normalized and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
