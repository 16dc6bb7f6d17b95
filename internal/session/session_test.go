package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zeroco/company-console/internal/apiclient"
	domainauth "github.com/zeroco/company-console/internal/domain/auth"
	apperrors "github.com/zeroco/company-console/internal/errors"
	"github.com/zeroco/company-console/internal/mocks"
)

func newSession(t *testing.T, store *mocks.MemoryTokenStore) *Session {
	t.Helper()
	s, err := New(context.Background(), Options{Store: store})
	require.NoError(t, err)
	return s
}

func TestNew_InitialState(t *testing.T) {
	anon := newSession(t, mocks.NewMemoryTokenStore())
	assert.False(t, anon.IsAuthenticated())
	_, ok := anon.User()
	assert.False(t, ok)

	authed := newSession(t, mocks.NewMemoryTokenStoreWith("jwt"))
	assert.True(t, authed.IsAuthenticated())
	user, ok := authed.User()
	require.True(t, ok)
	assert.Equal(t, "jwt", user.Token)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)

	store := mocks.NewMemoryTokenStore()
	store.FailRead = errors.New("corrupt")
	_, err = New(context.Background(), Options{Store: store})
	assert.ErrorContains(t, err, "corrupt")
}

func TestLogin_DoesNotWriteStoreAndSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMemoryTokenStore()
	s := newSession(t, store)

	// The login API call persists the token before the session transitions.
	require.NoError(t, store.Save(ctx, "jwt-1"))
	require.NoError(t, s.Login("jwt-1"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, 1, store.Saves(), "Login itself never writes the store")

	fresh := newSession(t, store)
	assert.True(t, fresh.IsAuthenticated())
}

func TestLogin_EmptyToken(t *testing.T) {
	s := newSession(t, mocks.NewMemoryTokenStore())
	assert.ErrorIs(t, s.Login(""), ErrNoToken)
	assert.False(t, s.IsAuthenticated())
}

func TestLogout_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockTokenStore(ctrl)
	store.EXPECT().Read(gomock.Any()).Return("jwt", true, nil)
	store.EXPECT().Clear(gomock.Any()).Return(nil).Times(1)

	s, err := New(context.Background(), Options{Store: store})
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background()))
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.Logout(context.Background()), "second logout is a no-op")
	assert.False(t, s.IsAuthenticated())
}

func TestLogout_ClearsStore(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMemoryTokenStoreWith("jwt")
	s := newSession(t, store)

	require.NoError(t, s.Logout(ctx))
	_, ok, err := store.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_StoreFailureKeepsState(t *testing.T) {
	store := mocks.NewMemoryTokenStoreWith("jwt")
	store.FailClear = errors.New("read-only")
	s := newSession(t, store)

	require.Error(t, s.Logout(context.Background()))
	assert.True(t, s.IsAuthenticated())
}

func TestSubscribe(t *testing.T) {
	s := newSession(t, mocks.NewMemoryTokenStore())

	var got []domainauth.Transition
	unsubscribe := s.Subscribe(func(tr domainauth.Transition) { got = append(got, tr) })
	s.Subscribe(nil)()

	require.NoError(t, s.Login("jwt"))
	require.NoError(t, s.Logout(context.Background()))
	require.NoError(t, s.Logout(context.Background()))
	unsubscribe()
	require.NoError(t, s.Login("jwt-2"))

	assert.Equal(t, []domainauth.Transition{
		{From: domainauth.StateAnonymous, To: domainauth.StateAuthenticated},
		{From: domainauth.StateAuthenticated, To: domainauth.StateAnonymous},
	}, got)
}

func TestHandleAuthFailure_FromAPIClient(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := mocks.NewMemoryTokenStoreWith("expired")
	s, err := New(context.Background(), Options{Store: store, Logger: logger})
	require.NoError(t, err)

	client, err := apiclient.New(apiclient.Options{
		BaseURL:  srv.URL + "/api",
		Store:    store,
		Location: func() string { return "/employees" },
		Logger:   logger,
	})
	require.NoError(t, err)
	client.OnAuthFailure(s.HandleAuthFailure)

	assert.NotPanics(t, func() {
		err = client.Get(context.Background(), "/employees", nil)
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))

	assert.True(t, s.InvalidationRequested())
	assert.True(t, s.IsAuthenticated(), "invalidation is a signal, not a logout")
	assert.Contains(t, logs.String(), "session invalidation requested")

	require.NoError(t, s.Logout(context.Background()))
	assert.False(t, s.InvalidationRequested())
}

func TestClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	decoder := mocks.NewMockClaimsDecoder(ctrl)
	want := domainauth.Claims{Subject: "jdoe", Roles: []domainauth.Role{domainauth.RoleAdmin}}
	decoder.EXPECT().Decode(gomock.Any(), "jwt").Return(want, nil)

	s, err := New(context.Background(), Options{Store: mocks.NewMemoryTokenStoreWith("jwt"), Claims: decoder})
	require.NoError(t, err)

	got, err := s.Claims(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Logout(context.Background()))
	_, err = s.Claims(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}
