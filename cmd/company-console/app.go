package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeroco/company-console/config"
	"github.com/zeroco/company-console/internal/bootstrap"
	apperrors "github.com/zeroco/company-console/internal/errors"
	"github.com/zeroco/company-console/internal/navigation"
	"github.com/zeroco/company-console/internal/notify"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type configLoader func() (config.AppConfig, error)

// app carries what every command needs: the wired console, the I/O streams,
// and the global output flags.
type app struct {
	streams    streams
	loadConfig configLoader
	console    *bootstrap.Console
	reader     *bufio.Reader

	output string
	query  string
}

// run executes one command line and returns the process exit status.
// A command that ends with an error or warning notification exits 1.
func run(ctx context.Context, args []string, s streams, load configLoader) int {
	a := &app{streams: s, loadConfig: load}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(s.In)
	root.SetOut(s.Out)
	root.SetErr(s.Err)

	err := root.ExecuteContext(ctx)
	code := a.exitCode(err)

	if a.console != nil {
		if closeErr := a.console.Close(context.WithoutCancel(ctx)); closeErr != nil {
			a.console.Logger.Warn("close console", "error", closeErr)
		}
	}
	return code
}

func (a *app) exitCode(err error) int {
	if err != nil {
		_, _ = fmt.Fprintf(a.streams.Err, "Error: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			return exitUsage
		}
		return exitFailure
	}
	if a.console == nil {
		return exitOK
	}
	if n, ok := a.console.Display.Last(); ok {
		switch n.Severity {
		case notify.SeverityError, notify.SeverityWarning:
			return exitFailure
		}
	}
	return exitOK
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := a.validateOutput(); err != nil {
		return err
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := bootstrap.InitLogger(a.streams.Err, cfg.Observability.SlogLevel())
	console, err := bootstrap.BuildConsole(cmd.Context(), bootstrap.ConsoleOptions{
		Config: cfg,
		Logger: logger,
		Output: a.streams.Err,
	})
	if err != nil {
		return fmt.Errorf("start console: %w", err)
	}
	a.console = console
	return nil
}

// enter navigates to route. Anonymous users are turned away from protected
// routes with an error notification.
func (a *app) enter(route navigation.Route) bool {
	c := a.console
	decision := c.Location.Navigate(route, c.Session.IsAuthenticated())
	if decision.Allowed {
		return true
	}
	c.Logger.Info("navigation redirected", "route", string(route), "redirect", string(decision.Redirect))
	c.Notifications.Error("Please log in first: run 'company-console login'.")
	return false
}

// fail reports err as a notification. Local form checks surface as warnings,
// everything else as errors.
func (a *app) fail(err error, fallback string) {
	msg := apperrors.UserMessage(err, fallback)
	if apperrors.IsClientValidation(err) {
		a.console.Notifications.Warning(msg)
		return
	}
	a.console.Notifications.Error(msg)
}

func (a *app) lines() *bufio.Reader {
	if a.reader == nil {
		a.reader = bufio.NewReader(a.streams.In)
	}
	return a.reader
}

// prompt reads one line from stdin. EOF yields whatever was read so far.
func (a *app) prompt(label string) (string, error) {
	_, _ = fmt.Fprintf(a.streams.Err, "%s: ", label)
	line, err := a.lines().ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptIfEmpty fills *value from stdin when the flag was left empty.
func (a *app) promptIfEmpty(value *string, label string) error {
	if *value != "" {
		return nil
	}
	v, err := a.prompt(label)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

func (a *app) confirm(question string) (bool, error) {
	answer, err := a.prompt(question + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
