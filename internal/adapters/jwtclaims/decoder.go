package jwtclaims

// Package jwtclaims reads display claims out of backend-issued bearer tokens.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/zeroco/company-console/internal/domain/auth"
)

// Decoder parses a JWT without verifying its signature, issuer, audience, or expiry.
// The console never holds the backend's signing key; claims are used for display only
// and authorization stays with the backend.
type Decoder struct {
	verifier *oidc.IDTokenVerifier
}

// NewDecoder creates a claims decoder.
func NewDecoder() *Decoder {
	cfg := &oidc.Config{
		SkipClientIDCheck:          true,
		SkipExpiryCheck:            true,
		SkipIssuerCheck:            true,
		InsecureSkipSignatureCheck: true,
		SupportedSigningAlgs: []string{
			"HS256", "HS384", "HS512",
			oidc.RS256, oidc.RS384, oidc.RS512,
			oidc.ES256, oidc.ES384, oidc.ES512,
		},
	}
	return &Decoder{verifier: oidc.NewVerifier("", nil, cfg)}
}

type rawClaims struct {
	Roles json.RawMessage `json:"roles"`
	Role  string          `json:"role"`
}

// Decode extracts subject, roles, and timestamps.
// Roles may be a comma separated string or a JSON array of strings.
func (d *Decoder) Decode(ctx context.Context, token string) (domainauth.Claims, error) {
	idToken, err := d.verifier.Verify(ctx, token)
	if err != nil {
		return domainauth.Claims{}, fmt.Errorf("parse token: %w", err)
	}

	var raw rawClaims
	if err := idToken.Claims(&raw); err != nil {
		return domainauth.Claims{}, fmt.Errorf("decode claims: %w", err)
	}
	roles, err := parseRoles(raw)
	if err != nil {
		return domainauth.Claims{}, err
	}

	return domainauth.Claims{
		Subject:   idToken.Subject,
		Roles:     roles,
		IssuedAt:  utcOrZero(idToken.IssuedAt),
		ExpiresAt: utcOrZero(idToken.Expiry),
	}, nil
}

func parseRoles(raw rawClaims) ([]domainauth.Role, error) {
	if len(raw.Roles) == 0 || string(raw.Roles) == "null" {
		return domainauth.ParseRoles(raw.Role), nil
	}
	var joined string
	if err := json.Unmarshal(raw.Roles, &joined); err == nil {
		return domainauth.ParseRoles(joined), nil
	}
	var list []string
	if err := json.Unmarshal(raw.Roles, &list); err != nil {
		return nil, fmt.Errorf("decode roles claim: %w", err)
	}
	return domainauth.ParseRoles(strings.Join(list, ",")), nil
}

func utcOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
