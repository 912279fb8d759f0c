package client

import (
	"context"
	"net/http"
)

// User is the public profile returned by the API.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the proof of a signin. It is passed to every authenticated call.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Signup registers a new user. It does not sign in.
func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/signup", "", body, nil)
}

// Signin authenticates and returns the new session.
func (c *Client) Signin(ctx context.Context, email, password string) (Session, error) {
	var resp struct {
		messageResponse
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", "", body, &resp); err != nil {
		return Session{}, err
	}
	return Session{Token: resp.Token, User: resp.User}, nil
}

// Signout tells the server the session ends. Tokens are stateless, so the caller
// must also discard s.
func (c *Client) Signout(ctx context.Context, s Session) error {
	return c.do(ctx, http.MethodGet, "/api/auth/signout", s.Token, nil, nil)
}

// Check returns the user behind s, failing with a 401 APIError when the token is no longer valid.
func (c *Client) Check(ctx context.Context, s Session) (User, error) {
	var resp struct {
		messageResponse
		User User `json:"user"`
	}
	if err := c.authed(ctx, s, http.MethodGet, "/api/auth/check", nil, &resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}
