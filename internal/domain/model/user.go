package model

import "strings"

// Credentials is the /auth/login request body.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the /auth/login response body.
type AuthResponse struct {
	JWT string `json:"jwt"`
}

// Registration is the /auth/register request body.
// ConfirmPassword is checked locally and never sent.
type Registration struct {
	Username        string `json:"username"  validate:"required"`
	Email           string `json:"email"     validate:"required,email"`
	Password        string `json:"password"  validate:"required,min=6"`
	ConfirmPassword string `json:"-"         validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName"  validate:"required"`
}

// Profile is the signed-in user's account record.
type Profile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Roles     string `json:"roles,omitempty"`
}

// RoleList splits the comma-separated Roles field.
func (p Profile) RoleList() []string {
	var roles []string
	for _, r := range strings.Split(p.Roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// PasswordChange is the /users/me/change-password request body.
// ConfirmNewPassword is checked locally and never sent.
type PasswordChange struct {
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword"     validate:"required,min=6"`
	ConfirmNewPassword string `json:"-"               validate:"required,eqfield=NewPassword"`
}

// MessageResponse is a backend acknowledgement carrying a display message.
type MessageResponse struct {
	Message string `json:"message"`
}
