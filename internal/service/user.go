package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zeroco/company-console/internal/apiclient"
	"github.com/zeroco/company-console/internal/domain/model"
	apperrors "github.com/zeroco/company-console/internal/errors"
)

const (
	ProfilePath        = "/users/me"
	ChangePasswordPath = "/users/me/change-password"
)

// UserService reads and updates the signed-in user's account.
type UserService struct {
	api API
}

// NewUserService constructs a UserService.
func NewUserService(api API) *UserService {
	if api == nil {
		panic("service: UserService API is required")
	}
	return &UserService{api: api}
}

// GetProfile returns the signed-in user's profile.
func (s *UserService) GetProfile(ctx context.Context) (model.Profile, error) {
	var out model.Profile
	if err := s.api.Do(ctx, http.MethodGet, ProfilePath, nil, &out); err != nil {
		return out, fmt.Errorf("get profile: %w", err)
	}
	return out, nil
}

// UpdatePassword changes the password. A rejected current password comes back
// as an invalid_credential error carrying the backend message.
func (s *UserService) UpdatePassword(ctx context.Context, change model.PasswordChange) (model.MessageResponse, error) {
	var out model.MessageResponse
	// A 401 here rejects the current password; it does not end the session.
	err := s.api.Do(ctx, http.MethodPost, ChangePasswordPath, change, &out, apiclient.WithoutAuthFailureHandlers())
	if err == nil {
		return out, nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return out, &apperrors.AppError{
				Code:    apperrors.ErrCodeInvalidCredential,
				Message: appErr.Message,
				Status:  appErr.Status,
				Field:   "currentPassword",
				Cause:   err,
			}
		}
	}
	return out, fmt.Errorf("change password: %w", err)
}
