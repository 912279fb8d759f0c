package dto

import "notes_backend/internal/feature/auth/domain/entity"

// UserRes is the public view of a user. The password hash is never part of it.
type UserRes struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserRes builds the public view of u.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Username: u.Username, Email: u.Email}
}

// MessageRes is the success envelope without payload.
type MessageRes struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginRes is returned by a successful signin.
type LoginRes struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    UserRes `json:"user"`
}

// CheckRes echoes the identity behind a valid token.
type CheckRes struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	User    UserRes `json:"user"`
}
