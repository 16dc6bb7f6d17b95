package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/zeroco/company-console/internal/ports"
)

// RequestIDHeader correlates console requests with backend logs.
const RequestIDHeader = "X-Request-ID"

// errTokenStore marks failures reading the token store, which are local rather than network faults.
var errTokenStore = errors.New("token store unavailable")

type skipAuthKey struct{}

func withoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey{}, true)
}

func authSkipped(ctx context.Context) bool {
	v, _ := ctx.Value(skipAuthKey{}).(bool)
	return v
}

// authTransport reads the token store on every request so a token saved or cleared
// by another process is honored immediately.
type authTransport struct {
	base  http.RoundTripper
	store ports.TokenStore
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	if out.Header.Get(RequestIDHeader) == "" {
		out.Header.Set(RequestIDHeader, uuid.NewString())
	}

	if !authSkipped(req.Context()) {
		token, ok, err := t.store.Read(req.Context())
		if err != nil {
			closeBody(req)
			return nil, fmt.Errorf("%w: %w", errTokenStore, err)
		}
		if ok {
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(out)
		}
	}
	return t.base.RoundTrip(out)
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
