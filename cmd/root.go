package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"realmform/internal/config"
	"realmform/internal/reconciler"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (unreadable source, malformed document).
	ExitCodeError = 1
	// ExitCodeConfigError indicates missing or invalid configuration.
	ExitCodeConfigError = 2
	// ExitCodeReconcileError indicates a run that failed and was rolled back.
	ExitCodeReconcileError = 3
)

var (
	// configPath is the configuration file, realmform.yaml when empty.
	configPath string

	// logLevel and logFormat override the logging configuration.
	logLevel  string
	logFormat string
)

// rootCmd represents the base command for the realmform application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "realmform",
	Short: "Reconcile identity server realms with declarative realm documents",
	Long: `realmform reads realm documents (JSON or YAML, from files, directories or a
Kubernetes ConfigMap) and makes the identity server state match them.

Declared resources are created or updated field by field. Under sync mode FULL,
resources that the documents do not declare are removed; a node marked IGNORE
is left untouched. Use 'realmform plan' to preview the changes of a run.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It runs the root command with a context that is cancelled on SIGINT and
// SIGTERM and exits with a code derived from the error.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "realmform version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if detail, ok := config.Explain(err); ok {
			fmt.Fprintln(os.Stderr, detail)
		}
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var cfgErr config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ExitCodeConfigError
	}

	var cfgErrs config.ConfigurationErrorCollection
	if errors.As(err, &cfgErrs) {
		return ExitCodeConfigError
	}

	var reconcileErr *reconciler.ReconcileError
	if errors.As(err, &reconcileErr) {
		return ExitCodeReconcileError
	}

	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newWatchCmd())

	addPersistentFlags(rootCmd)
}

// addPersistentFlags registers the flags every subcommand inherits.
func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default ./"+config.ConfigFileName+")")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}
