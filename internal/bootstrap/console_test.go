package bootstrap

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroco/company-console/config"
	"github.com/zeroco/company-console/internal/navigation"
	"github.com/zeroco/company-console/internal/testutil"
)

func testConfig(t *testing.T, baseURL string) config.AppConfig {
	t.Helper()
	var cfg config.AppConfig
	cfg.API.BaseURL = baseURL
	cfg.Token.File = filepath.Join(t.TempDir(), "credentials.yaml")
	cfg.Sanitize()
	return cfg
}

func TestBuildConsole_LoginFlow(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewBackend(t)
	backend.AddUser("admin", "secret123", "ROLE_USER", "ROLE_ADMIN")
	backend.SeedEmployees(3)

	var out bytes.Buffer
	console, err := BuildConsole(ctx, ConsoleOptions{Config: testConfig(t, backend.BaseURL()), Output: &out})
	require.NoError(t, err)
	t.Cleanup(func() { _ = console.Close(ctx) })

	assert.False(t, console.Session.IsAuthenticated())
	assert.Equal(t, "/", console.Location.Current())

	token, err := console.Services.Auth.Login(ctx, "admin", "secret123")
	require.NoError(t, err)
	require.NoError(t, console.Session.Login(token))

	ctrl := console.EmployeeController(0)
	require.NoError(t, ctrl.LoadPage(ctx))
	assert.Equal(t, int64(3), ctrl.Snapshot().TotalCount)

	summary, err := console.Services.Dashboard.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Employees)

	// A second console over the same file starts signed in.
	again, err := BuildConsole(ctx, ConsoleOptions{Config: console.Config, Output: &out})
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close(ctx) })
	assert.True(t, again.Session.IsAuthenticated())
}

func TestBuildConsole_UnauthorizedFlagsSession(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewBackend(t)
	backend.AddUser("admin", "secret123")

	console, err := BuildConsole(ctx, ConsoleOptions{Config: testConfig(t, backend.BaseURL()), Output: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = console.Close(ctx) })

	token, err := console.Services.Auth.Login(ctx, "admin", "secret123")
	require.NoError(t, err)
	require.NoError(t, console.Session.Login(token))
	backend.RevokeTokens()

	console.Location.Navigate(navigation.Profile, console.Session.IsAuthenticated())
	_, err = console.Services.Users.GetProfile(ctx)
	require.Error(t, err)
	assert.True(t, console.Session.InvalidationRequested())
}

func TestBuildConsole_RedisTokenStore(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	backend := testutil.NewBackend(t)
	backend.AddUser("admin", "secret123")

	cfg := testConfig(t, backend.BaseURL())
	cfg.Token.Backend = config.TokenBackendRedis
	cfg.Redis.URI = client.Options().Addr
	cfg.Redis.DB = client.Options().DB

	console, err := BuildConsole(ctx, ConsoleOptions{Config: cfg, Output: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = console.Close(ctx) })

	_, err = console.Services.Auth.Login(ctx, "admin", "secret123")
	require.NoError(t, err)

	keys, err := client.Keys(ctx, "console:token:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestBuildConsole_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t, "http://localhost:8080/api")
	cfg.Token.Backend = config.TokenBackendRedis
	cfg.Redis.URI = "127.0.0.1:1"

	_, err := BuildConsole(context.Background(), ConsoleOptions{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token store")
}
