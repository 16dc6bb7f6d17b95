package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zeroco/company-console/config"
	"github.com/zeroco/company-console/internal/adapters/filestore"
	"github.com/zeroco/company-console/internal/adapters/jwtclaims"
	redistore "github.com/zeroco/company-console/internal/adapters/redis"
	"github.com/zeroco/company-console/internal/apiclient"
	"github.com/zeroco/company-console/internal/navigation"
	"github.com/zeroco/company-console/internal/notify"
	"github.com/zeroco/company-console/internal/observability/statsd"
	"github.com/zeroco/company-console/internal/ports"
	"github.com/zeroco/company-console/internal/service"
	"github.com/zeroco/company-console/internal/session"
)

// ConsoleOptions groups inputs for BuildConsole.
type ConsoleOptions struct {
	Config config.AppConfig
	Logger *slog.Logger
	// Output receives rendered notifications; defaults to stderr.
	Output io.Writer
}

// ServiceContainer holds the resource clients.
type ServiceContainer struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Employees   *service.EmployeeService
	Departments *service.DepartmentService
	Projects    *service.ProjectService
	Dashboard   *service.DashboardService
}

// Console is the wired application: token store, API client, session,
// notifications, navigation, and services.
type Console struct {
	Config        config.AppConfig
	Logger        *slog.Logger
	Store         ports.TokenStore
	Client        *apiclient.Client
	Session       *session.Session
	Notifications *notify.Channel
	Display       *notify.Display
	Location      *navigation.Tracker
	Services      ServiceContainer

	closers []func(context.Context) error
}

// BuildConsole wires every component from configuration. Call Close when done.
func BuildConsole(ctx context.Context, opts ConsoleOptions) (*Console, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	c := &Console{Config: cfg, Logger: logger, Location: navigation.NewTracker()}

	store, err := c.buildTokenStore(ctx)
	if err != nil {
		return nil, c.failBuild(ctx, err)
	}
	c.Store = store

	shutdown, err := SetupTracing(ctx, cfg.Observability.Tracing, logger)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	c.closers = append(c.closers, shutdown)

	clientOpts := apiclient.Options{
		BaseURL:  cfg.API.BaseURL,
		Store:    store,
		Location: c.Location.Current,
		Timeout:  cfg.API.Timeout,
		Cookies:  cfg.API.CookiesEnabled,
		Tracing:  cfg.Observability.Tracing.IsEnabled(),
		Logger:   logger,
	}
	if sink := c.buildMetrics(); sink != nil {
		clientOpts.Metrics = sink
	}
	client, err := apiclient.New(clientOpts)
	if err != nil {
		return nil, c.failBuild(ctx, fmt.Errorf("api client: %w", err))
	}
	c.Client = client

	sess, err := session.New(ctx, session.Options{
		Store:  store,
		Claims: jwtclaims.NewDecoder(),
		Logger: logger,
	})
	if err != nil {
		return nil, c.failBuild(ctx, err)
	}
	c.Session = sess
	client.OnAuthFailure(sess.HandleAuthFailure)

	c.Notifications = notify.NewChannel()
	c.Display = notify.NewDisplay(c.Notifications, out, cfg.UI.NotifyAutoHide)
	c.closers = append(c.closers, func(context.Context) error {
		c.Display.Close()
		return nil
	})

	c.Services = newServices(client, store, logger)
	return c, nil
}

func newServices(api service.API, store ports.TokenStore, logger *slog.Logger) ServiceContainer {
	employees := service.NewEmployeeService(api, logger)
	departments := service.NewDepartmentService(api, logger)
	projects := service.NewProjectService(api, logger)
	return ServiceContainer{
		Auth:        service.NewAuthService(service.AuthServiceOptions{API: api, Store: store, Logger: logger}),
		Users:       service.NewUserService(api),
		Employees:   employees,
		Departments: departments,
		Projects:    projects,
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Employees:   employees,
			Departments: departments,
			Projects:    projects,
		}),
	}
}

//nolint:ireturn // the backend is chosen at runtime.
func (c *Console) buildTokenStore(ctx context.Context) (ports.TokenStore, error) {
	cfg := c.Config
	origin := cfg.API.Origin()

	if cfg.Token.UsesRedis() {
		client, err := ConnectRedis(ctx, cfg.Redis, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("token store: %w", err)
		}
		c.closers = append(c.closers, func(context.Context) error { return client.Close() })
		store, err := redistore.NewTokenStore(client, redistore.TokenStoreOptions{
			Prefix:     cfg.Redis.KeyPrefix,
			Origin:     origin,
			StorageKey: cfg.Token.StorageKey,
		})
		if err != nil {
			return nil, fmt.Errorf("token store: %w", err)
		}
		return store, nil
	}

	path := cfg.Token.File
	if path == "" {
		p, err := filestore.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("token store: %w", err)
		}
		path = p
	}
	store, err := filestore.NewTokenStore(path, origin, cfg.Token.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("token store: %w", err)
	}
	return store, nil
}

// buildMetrics returns nil when metrics are disabled or the client cannot be created.
func (c *Console) buildMetrics() *statsd.Client {
	mc := c.Config.Observability.Metrics
	if !mc.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: mc.StatsdAddress,
		Prefix:  mc.Prefix,
		Logger:  c.Logger,
	})
	if err != nil {
		c.Logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	c.closers = append(c.closers, func(context.Context) error { return client.Close() })
	return client
}

func (c *Console) failBuild(ctx context.Context, err error) error {
	if closeErr := c.Close(ctx); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}

// Close releases resources in reverse order of creation.
func (c *Console) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
