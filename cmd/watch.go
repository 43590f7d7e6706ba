package cmd

import (
	"github.com/spf13/cobra"

	"realmform/internal/former"
	"realmform/pkg/logging"
)

func newWatchCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reconcile now and again whenever a realm document changes",
		Long: `Runs apply once and then watches the configured sources: files and
directories through filesystem notifications, a ConfigMap through a Kubernetes
informer. Changes are debounced (watch.debounce) and trigger a new run. A
failed run is reported and the watch continues. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd, false)
			if err != nil {
				return err
			}
			manager, cleanup, err := setup(cfg, true)
			if err != nil {
				return err
			}
			defer cleanup()

			formatter := flags.formatter()
			return manager.Watch(cmd.Context(), func(report *former.Report, err error) {
				if err != nil {
					logging.Error("Watch", err, "Run failed")
				}
				if perr := printReport(cmd.OutOrStdout(), formatter, report); perr != nil {
					logging.Warn("Watch", "%v", perr)
				}
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}
