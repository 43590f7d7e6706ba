package cmd

import (
	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile the identity server with the realm documents",
		Long: `Loads the realm documents, forms every declared realm and commits the result
to the state database. The run is all or nothing: when a reference cannot be
resolved the run is rolled back and nothing is written.

With --dry-run the run is a preview and behaves like 'realmform plan'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, flags, false)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newPlanCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the changes apply would make",
		Long: `Forms every declared realm in preview mode. The report lists exactly the
changes a committing run would make; nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, flags, true)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runOnce(cmd *cobra.Command, flags *runFlags, preview bool) error {
	cfg, err := flags.loadConfig(cmd, preview)
	if err != nil {
		return err
	}
	manager, cleanup, err := setup(cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	report, runErr := manager.Run(cmd.Context())
	if err := printReport(cmd.OutOrStdout(), flags.formatter(), report); err != nil {
		return err
	}
	return runErr
}
