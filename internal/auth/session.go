// Package auth manages the client's login session: exchanging
// credentials for a token, persisting it across restarts, and restoring
// it on startup when it has not expired.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/prefs"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// Role is the account kind the backend assigned at login. It decides
// which navigation tree the app presents.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleStaff   Role = "staff"
)

// ParseRole validates a backend role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleStaff:
		return Role(s), nil
	}
	return "", fmt.Errorf("auth: unknown role %q", s)
}

// ErrNoSession means there is no stored token, or the stored token has
// expired; the caller should show the login screen.
var ErrNoSession = errors.New("auth: no valid session")

// Session owns the login state shared by every screen.
type Session struct {
	client *api.Client
	prefs  *prefs.Preferences
	logger *logging.Logger

	user *api.User
	role Role
}

// NewSession creates a session manager.
func NewSession(client *api.Client, p *prefs.Preferences, logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.Default()
	}
	return &Session{client: client, prefs: p, logger: logger}
}

// Login exchanges credentials for a token, attaches it to the API
// client and persists it for the next launch.
func (s *Session) Login(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := s.client.Auth.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	role, err := ParseRole(resp.User.Role)
	if err != nil {
		return nil, err
	}

	s.client.SetAuthToken(resp.Token)
	s.user = &resp.User
	s.role = role

	if err := s.prefs.SetAuthToken(ctx, resp.Token); err != nil {
		// A dead preference store only costs the user a re-login.
		s.logger.Warn("could not persist auth token", "error", err)
	}
	return s.user, nil
}

// Restore reattaches a persisted token. Expired or missing tokens yield
// ErrNoSession; the token's signature is the backend's to verify, the
// client only inspects the expiry claim to skip a doomed request.
func (s *Session) Restore(ctx context.Context) (*api.User, error) {
	token, err := s.prefs.AuthToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: read stored token: %w", err)
	}
	if token == "" {
		return nil, ErrNoSession
	}
	if tokenExpired(token, time.Now()) {
		_ = s.prefs.ClearAuthToken(ctx)
		return nil, ErrNoSession
	}

	s.client.SetAuthToken(token)
	user, err := s.client.Auth.Me(ctx)
	if err != nil {
		if api.IsNotFound(err) || isUnauthorized(err) {
			_ = s.prefs.ClearAuthToken(ctx)
			s.client.SetAuthToken("")
			return nil, ErrNoSession
		}
		return nil, err
	}
	role, err := ParseRole(user.Role)
	if err != nil {
		return nil, err
	}
	s.user = user
	s.role = role
	return user, nil
}

// Logout drops the token from the client and the preference store.
func (s *Session) Logout(ctx context.Context) error {
	s.client.SetAuthToken("")
	s.user = nil
	s.role = ""
	if err := s.prefs.ClearAuthToken(ctx); err != nil {
		return fmt.Errorf("auth: clear stored token: %w", err)
	}
	return nil
}

// User returns the logged-in user, or nil.
func (s *Session) User() *api.User {
	return s.user
}

// Role returns the logged-in user's role; empty when logged out.
func (s *Session) Role() Role {
	return s.role
}

// tokenExpired decodes the expiry claim without verifying the
// signature. Tokens without an exp claim are treated as live.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

func isUnauthorized(err error) bool {
	var apiErr *api.Error
	return errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}
