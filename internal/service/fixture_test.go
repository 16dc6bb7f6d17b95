package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeroco/company-console/internal/apiclient"
	"github.com/zeroco/company-console/internal/mocks"
	"github.com/zeroco/company-console/internal/testutil"
)

type fixture struct {
	backend *testutil.Backend
	store   *mocks.MemoryTokenStore
	client  *apiclient.Client
}

// newFixture starts a fake backend with an "admin" account already signed in.
func newFixture(t *testing.T, roles ...string) *fixture {
	t.Helper()
	if len(roles) == 0 {
		roles = []string{"ROLE_USER", "ROLE_ADMIN"}
	}
	backend := testutil.NewBackend(t)
	backend.AddUser("admin", "secret123", roles...)
	store := mocks.NewMemoryTokenStoreWith(backend.IssueToken("admin"))
	client, err := apiclient.New(apiclient.Options{BaseURL: backend.BaseURL(), Store: store})
	require.NoError(t, err)
	return &fixture{backend: backend, store: store, client: client}
}
