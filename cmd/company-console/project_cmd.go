package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/zeroco/company-console/internal/domain/model"
	"github.com/zeroco/company-console/internal/navigation"
)

type assignmentFunc func(ctx context.Context, projectID, employeeID int64) (model.Project, error)

func newAssignCmd(a *app) *cobra.Command {
	return assignmentCmd(a, "assign", "Assign an employee to a project",
		"Employee assigned to project.", "Failed to assign employee.",
		func(a *app) assignmentFunc { return a.console.Services.Projects.AssignEmployee })
}

func newUnassignCmd(a *app) *cobra.Command {
	return assignmentCmd(a, "unassign", "Remove an employee from a project",
		"Employee removed from project.", "Failed to remove employee.",
		func(a *app) assignmentFunc { return a.console.Services.Projects.UnassignEmployee })
}

func assignmentCmd(a *app, use, short, success, fallback string, op func(*app) assignmentFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <project-id> <employee-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			employeeID, err := parseID(args[1])
			if err != nil {
				return err
			}
			if !a.enter(navigation.Projects) {
				return nil
			}
			p, err := op(a)(cmd.Context(), projectID, employeeID)
			if err != nil {
				a.fail(err, fallback)
				return nil
			}
			a.console.Notifications.Success(success)
			return a.render(p, table{header: []string{"FIELD", "VALUE"}, rows: projectDetail(p)})
		},
	}
}

func newSyncEmployeesCmd(a *app) *cobra.Command {
	var ids []int64
	cmd := &cobra.Command{
		Use:   "sync-employees <project-id>",
		Short: "Make the project's assignments exactly the given employees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.enter(navigation.Projects) {
				return nil
			}
			p, err := a.console.Services.Projects.SyncEmployees(cmd.Context(), projectID, ids)
			if err != nil {
				a.fail(err, "Failed to update project employees.")
				return nil
			}
			a.console.Notifications.Success("Project employees updated.")
			return a.render(p, table{header: []string{"FIELD", "VALUE"}, rows: projectDetail(p)})
		},
	}
	cmd.Flags().Int64SliceVar(&ids, "employees", nil, "Employee ids, comma separated; omit to clear all assignments")
	return cmd
}
