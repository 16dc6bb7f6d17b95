package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/session and internal/service.

import (
	"context"

	domainauth "github.com/zeroco/company-console/internal/domain/auth"
)

// TokenStore persists the single bearer token for one API origin.
// No expiration check is performed; a stored token is valid until the backend rejects it.
type TokenStore interface {
	// Save replaces any stored token.
	Save(ctx context.Context, token string) error
	// Read returns the stored token; ok is false when none is stored.
	Read(ctx context.Context) (token string, ok bool, err error)
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// ClaimsDecoder extracts display claims from a bearer token without verifying its signature.
type ClaimsDecoder interface {
	Decode(ctx context.Context, token string) (domainauth.Claims, error)
}
