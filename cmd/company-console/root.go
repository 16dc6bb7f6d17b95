package main

import "github.com/spf13/cobra"

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "company-console",
		Short:         "Manage employees, departments, and projects of the company API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputTable, "Output format: table or json")
	cmd.PersistentFlags().StringVar(&a.query, "query", "", "JMESPath expression applied to the result; prints JSON")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	projects := projectsCommand().command(a)
	projects.AddCommand(newAssignCmd(a), newUnassignCmd(a), newSyncEmployeesCmd(a))

	cmd.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newRegisterCmd(a),
		newWhoamiCmd(a),
		newDashboardCmd(a),
		employeesCommand().command(a),
		departmentsCommand().command(a),
		projects,
		newProfileCmd(a),
	)
	return cmd
}
