package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroco/company-console/internal/domain/model"
	apperrors "github.com/zeroco/company-console/internal/errors"
)

func TestUserService_GetProfile(t *testing.T) {
	f := newFixture(t)
	profile, err := NewUserService(f.client).GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", profile.Username)
	assert.Contains(t, profile.RoleList(), "ROLE_ADMIN")
}

func TestUserService_UpdatePassword(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.client)

	resp, err := svc.UpdatePassword(context.Background(), model.PasswordChange{
		CurrentPassword: "secret123", NewPassword: "newsecret", ConfirmNewPassword: "newsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password updated successfully.", resp.Message)
	assert.Equal(t, "newsecret", f.backend.Password("admin"))
}

func TestUserService_UpdatePasswordWrongCurrent(t *testing.T) {
	f := newFixture(t)
	_, err := NewUserService(f.client).UpdatePassword(context.Background(), model.PasswordChange{
		CurrentPassword: "nope", NewPassword: "newsecret", ConfirmNewPassword: "newsecret",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidCredential(err))
	assert.Equal(t, "Current password is incorrect.", apperrors.UserMessage(err, "Failed to update password."))
	assert.Equal(t, "secret123", f.backend.Password("admin"))
}

func TestUserService_UpdatePasswordForbiddenIsInvalidCredential(t *testing.T) {
	f := newFixture(t)
	f.backend.FailNext(http.MethodPost, ChangePasswordPath, http.StatusForbidden, "")
	_, err := NewUserService(f.client).UpdatePassword(context.Background(), model.PasswordChange{})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidCredential(err))
	assert.Equal(t, "Failed to update password.", apperrors.UserMessage(err, "Failed to update password."))
}

func TestUserService_UpdatePasswordUnauthorizedKeepsSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	var invalidations int
	f.client.OnAuthFailure(func(context.Context, int) { invalidations++ })

	f.backend.FailNext(http.MethodPost, ChangePasswordPath, http.StatusUnauthorized, `{"message":"Current password is incorrect."}`)
	_, err := NewUserService(f.client).UpdatePassword(ctx, model.PasswordChange{})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidCredential(err))
	assert.Zero(t, invalidations)

	f.backend.FailNext(http.MethodGet, ProfilePath, http.StatusUnauthorized, "")
	_, err = NewUserService(f.client).GetProfile(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, invalidations, "other endpoints still report a 401")
}

func TestUserService_UpdatePasswordServerError(t *testing.T) {
	f := newFixture(t)
	f.backend.FailNext(http.MethodPost, ChangePasswordPath, http.StatusInternalServerError, "")
	_, err := NewUserService(f.client).UpdatePassword(context.Background(), model.PasswordChange{})
	require.Error(t, err)
	assert.True(t, apperrors.IsServer(err))
}
