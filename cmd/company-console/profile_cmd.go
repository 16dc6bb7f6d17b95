package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeroco/company-console/internal/domain/model"
	"github.com/zeroco/company-console/internal/navigation"
	"github.com/zeroco/company-console/internal/validation"
)

const (
	msgProfileFailed   = "Failed to fetch profile data."
	msgPasswordFailed  = "Failed to update password."
	msgPasswordUpdated = "Password updated successfully!"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the account profile or change its password",
	}
	cmd.AddCommand(newProfileShowCmd(a), newChangePasswordCmd(a))
	return cmd
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.enter(navigation.Profile) {
				return nil
			}
			p, err := a.console.Services.Users.GetProfile(cmd.Context())
			if err != nil {
				a.fail(err, msgProfileFailed)
				return nil
			}
			return a.render(p, table{
				header: []string{"FIELD", "VALUE"},
				rows: fieldRows(
					"ID", formatID(p.ID),
					"Username", p.Username,
					"Email", p.Email,
					"First name", p.FirstName,
					"Last name", p.LastName,
					"Roles", strings.Join(p.RoleList(), ", "),
				),
			})
		},
	}
}

func newChangePasswordCmd(a *app) *cobra.Command {
	var change model.PasswordChange
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the signed-in user's password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.enter(navigation.Profile) {
				return nil
			}
			for _, p := range []struct {
				dst   *string
				label string
			}{
				{&change.CurrentPassword, "Current password"},
				{&change.NewPassword, "New password"},
				{&change.ConfirmNewPassword, "Confirm new password"},
			} {
				if err := a.promptIfEmpty(p.dst, p.label); err != nil {
					return err
				}
			}
			if err := validation.PasswordChange(change); err != nil {
				a.fail(err, "")
				return nil
			}

			resp, err := a.console.Services.Users.UpdatePassword(cmd.Context(), change)
			if err != nil {
				a.fail(err, msgPasswordFailed)
				return nil
			}
			msg := resp.Message
			if strings.TrimSpace(msg) == "" {
				msg = msgPasswordUpdated
			}
			a.console.Notifications.Success(msg)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&change.CurrentPassword, "current", "", "Current password (prompted when empty)")
	fs.StringVar(&change.NewPassword, "new", "", "New password (prompted when empty)")
	fs.StringVar(&change.ConfirmNewPassword, "confirm", "", "New password again (prompted when empty)")
	return cmd
}
