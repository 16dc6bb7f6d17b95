package auth

// Package auth contains domain-level types for the console's authentication state.
// It is pure and free of framework/adapter concerns.

import (
	"slices"
	"strings"
	"time"
)

// State is the console's authentication state.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// User is the minimal descriptor exposed for an authenticated session.
type User struct {
	Token string
}

// Role is a backend authority name such as "ROLE_ADMIN".
type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleUser  Role = "ROLE_USER"
)

// Claims are display-only facts read from the bearer token without verification.
// They are never used for access decisions.
type Claims struct {
	Subject   string
	Roles     []Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the claims include role.
func (c Claims) HasRole(role Role) bool {
	return slices.Contains(c.Roles, role)
}

// ParseRoles splits a comma-separated authority list.
func ParseRoles(raw string) []Role {
	var roles []Role
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			roles = append(roles, Role(part))
		}
	}
	return roles
}

// Transition describes a change of State, delivered to session observers.
type Transition struct {
	From State
	To   State
}
