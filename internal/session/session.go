// Package session holds the console's authentication state machine.
//
// A Session is created once at startup from the token store and passed explicitly
// to whatever needs it. It has two states, anonymous and authenticated.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/zeroco/company-console/internal/domain/auth"
	"github.com/zeroco/company-console/internal/ports"
)

// ErrNoToken is returned by Login when given an empty token and by Claims when anonymous.
var ErrNoToken = errors.New("no token")

// Options groups dependencies for Session.
type Options struct {
	Store ports.TokenStore // Required
	// Claims decodes display claims; optional.
	Claims ports.ClaimsDecoder
	Logger *slog.Logger
}

// Observer receives state transitions.
type Observer func(domainauth.Transition)

// Session tracks whether the console holds a usable bearer token.
type Session struct {
	store  ports.TokenStore
	claims ports.ClaimsDecoder
	logger *slog.Logger

	mu          sync.RWMutex
	state       domainauth.State
	token       string
	invalidated bool
	nextID      int
	observers   map[int]Observer
}

// New reads the token store and starts authenticated when a token is present.
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, errors.New("session: token store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		store:     opts.Store,
		claims:    opts.Claims,
		logger:    logger,
		state:     domainauth.StateAnonymous,
		observers: make(map[int]Observer),
	}

	token, ok, err := opts.Store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("session: read token: %w", err)
	}
	if ok {
		s.state = domainauth.StateAuthenticated
		s.token = token
	}
	return s, nil
}

// Login marks the session authenticated with token. The token must already be
// persisted by the login call; Login does not write the store.
func (s *Session) Login(token string) error {
	if token == "" {
		return ErrNoToken
	}
	s.mu.Lock()
	from := s.state
	s.state = domainauth.StateAuthenticated
	s.token = token
	s.invalidated = false
	s.mu.Unlock()

	s.logger.Info("session authenticated")
	s.notify(domainauth.Transition{From: from, To: domainauth.StateAuthenticated})
	return nil
}

// Logout clears the token store and returns to anonymous. Logging out of an
// anonymous session does nothing.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.RLock()
	anonymous := s.state == domainauth.StateAnonymous
	s.mu.RUnlock()
	if anonymous {
		return nil
	}

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("session: clear token: %w", err)
	}

	s.mu.Lock()
	from := s.state
	s.state = domainauth.StateAnonymous
	s.token = ""
	s.invalidated = false
	s.mu.Unlock()

	if from == domainauth.StateAnonymous {
		return nil
	}
	s.logger.Info("session ended")
	s.notify(domainauth.Transition{From: from, To: domainauth.StateAnonymous})
	return nil
}

// State returns the current state.
func (s *Session) State() domainauth.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a token is held.
func (s *Session) IsAuthenticated() bool {
	return s.State() == domainauth.StateAuthenticated
}

// User returns the authenticated user descriptor.
func (s *Session) User() (domainauth.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != domainauth.StateAuthenticated {
		return domainauth.User{}, false
	}
	return domainauth.User{Token: s.token}, true
}

// HandleAuthFailure is registered with the API client. It records that the backend
// rejected the token; the session stays authenticated until a higher layer logs out.
func (s *Session) HandleAuthFailure(ctx context.Context, status int) {
	s.mu.Lock()
	s.invalidated = true
	state := s.state
	s.mu.Unlock()

	s.logger.WarnContext(ctx, "session invalidation requested", "status", status, "state", string(state))
}

// InvalidationRequested reports whether a 401 was observed since the last login or logout.
func (s *Session) InvalidationRequested() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.invalidated
}

// Subscribe registers fn for state transitions and returns a function that removes it.
func (s *Session) Subscribe(fn Observer) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Claims decodes the held token for display. It never affects the session state.
func (s *Session) Claims(ctx context.Context) (domainauth.Claims, error) {
	user, ok := s.User()
	if !ok {
		return domainauth.Claims{}, ErrNoToken
	}
	if s.claims == nil {
		return domainauth.Claims{}, errors.New("session: no claims decoder configured")
	}
	return s.claims.Decode(ctx, user.Token)
}

func (s *Session) notify(t domainauth.Transition) {
	s.mu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(t)
	}
}
