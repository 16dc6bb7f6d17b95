package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeroco/company-console/internal/domain/model"
	"github.com/zeroco/company-console/internal/navigation"
	"github.com/zeroco/company-console/internal/validation"
)

const (
	msgLoginFailed        = "Login failed."
	msgRegistrationFailed = "Registration failed."
	msgRegistered         = "Registration successful! Please log in."
)

func newLoginCmd(a *app) *cobra.Command {
	var creds model.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session token for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.enter(navigation.Login)
			if err := a.promptIfEmpty(&creds.Username, "Username"); err != nil {
				return err
			}
			if err := a.promptIfEmpty(&creds.Password, "Password"); err != nil {
				return err
			}
			if err := validation.Login(creds); err != nil {
				a.fail(err, "")
				return nil
			}

			c := a.console
			token, err := c.Services.Auth.Login(cmd.Context(), creds.Username, creds.Password)
			if err != nil {
				a.fail(err, msgLoginFailed)
				return nil
			}
			if err := c.Session.Login(token); err != nil {
				a.fail(err, msgLoginFailed)
				return nil
			}
			a.enter(navigation.Dashboard)
			c.Notifications.Success(fmt.Sprintf("Signed in as %s.", creds.Username))
			return nil
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Username (prompted when empty)")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Password (prompted when empty)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.console
			if err := c.Session.Logout(cmd.Context()); err != nil {
				a.fail(err, "Logout failed.")
				return nil
			}
			a.enter(navigation.Login)
			c.Notifications.Info("Signed out.")
			return nil
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var reg model.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.enter(navigation.Register)
			if err := a.promptIfEmpty(&reg.Password, "Password"); err != nil {
				return err
			}
			if err := a.promptIfEmpty(&reg.ConfirmPassword, "Confirm password"); err != nil {
				return err
			}
			if err := validation.Registration(reg); err != nil {
				a.fail(err, "")
				return nil
			}

			c := a.console
			if _, err := c.Services.Auth.Register(cmd.Context(), reg); err != nil {
				a.fail(err, msgRegistrationFailed)
				return nil
			}
			c.Notifications.Success(msgRegistered)
			a.enter(navigation.Login)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&reg.Username, "username", "", "Username")
	fs.StringVar(&reg.Email, "email", "", "Email address")
	fs.StringVar(&reg.FirstName, "first-name", "", "First name")
	fs.StringVar(&reg.LastName, "last-name", "", "Last name")
	fs.StringVar(&reg.Password, "password", "", "Password (prompted when empty)")
	fs.StringVar(&reg.ConfirmPassword, "confirm-password", "", "Password confirmation (prompted when empty)")
	return cmd
}

type whoami struct {
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	IssuedAt  time.Time `json:"issuedAt,omitzero"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user as read from the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.console
			if !c.Session.IsAuthenticated() {
				c.Notifications.Error("Not signed in.")
				return nil
			}
			claims, err := c.Session.Claims(cmd.Context())
			if err != nil {
				a.fail(err, "Could not read the session token.")
				return nil
			}
			out := whoami{Username: claims.Subject, IssuedAt: claims.IssuedAt, ExpiresAt: claims.ExpiresAt}
			for _, r := range claims.Roles {
				out.Roles = append(out.Roles, string(r))
			}
			return a.render(out, table{
				header: []string{"FIELD", "VALUE"},
				rows: fieldRows(
					"Username", out.Username,
					"Roles", strings.Join(out.Roles, ","),
					"Issued", formatTime(out.IssuedAt),
					"Expires", formatTime(out.ExpiresAt),
				),
			})
		},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
