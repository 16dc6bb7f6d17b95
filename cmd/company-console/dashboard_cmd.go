package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zeroco/company-console/internal/navigation"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals of employees, departments, and projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.enter(navigation.Dashboard) {
				return nil
			}
			s, err := a.console.Services.Dashboard.Summary(cmd.Context())
			if err != nil {
				a.fail(err, "Failed to load dashboard data.")
				return nil
			}
			return a.render(s, table{
				header: []string{"COLLECTION", "TOTAL"},
				rows: [][]string{
					{"Employees", strconv.FormatInt(s.Employees, 10)},
					{"Departments", strconv.FormatInt(s.Departments, 10)},
					{"Projects", strconv.FormatInt(s.Projects, 10)},
				},
			})
		},
	}
}
