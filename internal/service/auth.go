package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/zeroco/company-console/internal/apiclient"
	"github.com/zeroco/company-console/internal/domain/model"
	apperrors "github.com/zeroco/company-console/internal/errors"
	"github.com/zeroco/company-console/internal/ports"
)

const (
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"

	// MsgNoToken is reported when a successful login response lacks a token.
	MsgNoToken = "Login failed: No token received."
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API    API              // Required
	Store  ports.TokenStore // Required: receives the token after login
	Logger *slog.Logger     // Optional
}

// AuthService calls the unauthenticated /auth endpoints.
type AuthService struct {
	api    API
	store  ports.TokenStore
	logger *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.API == nil {
		panic("service: AuthServiceOptions.API is required")
	}
	if opts.Store == nil {
		panic("service: AuthServiceOptions.Store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{api: opts.API, store: opts.Store, logger: logger}
}

// Login exchanges credentials for a token and persists it. The returned token
// is what the session should be switched to.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var resp model.AuthResponse
	creds := model.Credentials{Username: username, Password: password}
	if err := s.api.Do(ctx, http.MethodPost, LoginPath, creds, &resp, apiclient.WithoutAuth()); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.JWT == "" {
		return "", apperrors.Auth(MsgNoToken)
	}
	if err := s.store.Save(ctx, resp.JWT); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "")
	}
	s.logger.InfoContext(ctx, "login succeeded", "username", username)
	return resp.JWT, nil
}

// Register creates an account. It does not sign the user in.
func (s *AuthService) Register(ctx context.Context, reg model.Registration) (model.Profile, error) {
	var out model.Profile
	if err := s.api.Do(ctx, http.MethodPost, RegisterPath, reg, &out, apiclient.WithoutAuth()); err != nil {
		return out, fmt.Errorf("register: %w", err)
	}
	s.logger.InfoContext(ctx, "account registered", "username", out.Username)
	return out, nil
}
