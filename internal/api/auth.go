package api

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AuthService handles login and account lookups.
type AuthService struct {
	c *Client
}

// LoginRequest are the login form fields, validated locally before any
// network call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the account it belongs to.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates against the backend.
// POST /api/auth/login
// The caller decides whether to persist the token and must call
// SetAuthToken to attach it to subsequent requests.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("api: invalid login request: %w", err)
	}
	out := new(LoginResponse)
	if err := s.c.post(ctx, "/api/auth/login", req, out, "auth"); err != nil {
		return nil, err
	}
	return out, nil
}

// Me returns the account for the attached token.
// GET /api/auth/me
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	out := new(User)
	if err := s.c.get(ctx, "/api/auth/me", nil, out, "auth"); err != nil {
		return nil, err
	}
	return out, nil
}
