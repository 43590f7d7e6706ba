package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"realmform/internal/changes"
	"realmform/internal/config"
	"realmform/internal/definition"
	"realmform/internal/former"
	"realmform/internal/formatting"
	"realmform/internal/model/memory"
	"realmform/internal/reconciler"
	"realmform/internal/source"
	"realmform/internal/state"
	"realmform/pkg/logging"
)

// runFlags are the flags shared by apply, plan and watch.
type runFlags struct {
	sources     []string
	statePath   string
	metricsFile string
	adminRealm  string
	syncMode    string
	dryRun      bool
	output      string
	quiet       bool
	color       bool
}

func (f *runFlags) register(cmd *cobra.Command, withDryRun bool) {
	flags := cmd.Flags()
	flags.StringSliceVar(&f.sources, "source", nil, "Realm document file or directory, repeatable (overrides sources.paths)")
	flags.StringVar(&f.statePath, "state", "", "State database path (overrides state.path)")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "Write run metrics to this node-exporter textfile")
	flags.StringVar(&f.adminRealm, "admin-realm", "", "Realm that is never deleted (overrides adminRealm)")
	flags.StringVar(&f.syncMode, "sync-mode", "", "Root sync mode, FULL or IGNORE (overrides syncMode)")
	flags.StringVarP(&f.output, "output", "o", "table", "Report format: table, console, json or yaml")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Only show resources that change, without the change listing")
	flags.BoolVar(&f.color, "color", false, "Colorize the report table")
	if withDryRun {
		flags.BoolVar(&f.dryRun, "dry-run", false, "Preview the run without writing anything")
	}
}

// loadConfig reads the configuration file, applies the command line
// overrides, validates the result and initializes logging.
func (f *runFlags) loadConfig(cmd *cobra.Command, preview bool) (config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}

	changed := func(name string) bool {
		flag := cmd.Flag(name)
		return flag != nil && flag.Changed
	}
	if changed("source") {
		cfg.Sources.Paths = f.sources
	}
	if changed("state") {
		cfg.State.Path = f.statePath
	}
	if changed("metrics-file") {
		cfg.Metrics.Textfile = f.metricsFile
	}
	if changed("admin-realm") {
		cfg.AdminRealm = f.adminRealm
	}
	if changed("sync-mode") {
		cfg.SyncMode = f.syncMode
	}
	if changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if preview {
		cfg.DryRun = true
	}
	if changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if _, err := formatting.ParseFormat(f.output); err != nil {
		return config.Config{}, config.NewValidationError("output", err.Error())
	}

	level, _ := logging.ParseLevel(cfg.Logging.Level)
	logging.InitForCLIWithFormat(level, logging.Format(cfg.Logging.Format), cmd.ErrOrStderr())
	return cfg, nil
}

// formatter returns the report formatter selected by the flags.
func (f *runFlags) formatter() formatting.Formatter {
	format, _ := formatting.ParseFormat(f.output)
	return formatting.NewFormatter(formatting.Options{Format: format, Quiet: f.quiet, Color: f.color})
}

// setup builds the manager of a configuration. The returned cleanup closes
// the state database.
func setup(cfg config.Config, detectors bool) (*reconciler.Manager, func(), error) {
	syncMode, err := definition.ParseSyncMode(cfg.SyncMode)
	if err != nil {
		return nil, nil, err
	}
	mode := changes.Commit
	if cfg.DryRun {
		mode = changes.Preview
	}

	managerConfig := reconciler.ManagerConfig{
		Options: former.Options{Mode: mode, SyncMode: syncMode, AdminRealm: cfg.AdminRealm},
	}

	if len(cfg.Sources.Paths) > 0 {
		managerConfig.Sources = append(managerConfig.Sources, &source.Files{Paths: cfg.Sources.Paths})
		if detectors {
			managerConfig.Detectors = append(managerConfig.Detectors,
				reconciler.NewFilesystemDetector(cfg.Sources.Paths, cfg.Watch.Debounce))
		}
	}
	if cm := cfg.Sources.ConfigMap; cm != nil {
		client, err := source.NewKubernetesClient(cm.Kubeconfig)
		if err != nil {
			return nil, nil, err
		}
		managerConfig.Sources = append(managerConfig.Sources, &source.ConfigMap{Client: client, Namespace: cm.Namespace, ConfigMapName: cm.Name})
		if detectors {
			managerConfig.Detectors = append(managerConfig.Detectors,
				reconciler.NewConfigMapDetector(client, cm.Namespace, cm.Name, cfg.Watch.Debounce))
		}
	}
	if cfg.Template.Enabled {
		managerConfig.Templater = &source.Templater{Values: cfg.Template.Values}
	}

	cleanup := func() {}
	if cfg.State.Path != "" {
		store, err := state.Open(cfg.State.Path, cfg.AdminRealm)
		if err != nil {
			return nil, nil, err
		}
		managerConfig.Backend = store
		cleanup = func() {
			if err := store.Close(); err != nil {
				logging.Warn("StateStore", "Failed to close state database: %v", err)
			}
		}
	} else {
		// Dry run without state: preview against a fresh identity server.
		managerConfig.Backend = memory.NewBackend(memory.NewStoreWithRealms(cfg.AdminRealm))
	}

	if cfg.Metrics.Textfile != "" {
		managerConfig.Metrics = reconciler.NewMetrics()
		managerConfig.MetricsTextfile = cfg.Metrics.Textfile
	}

	return reconciler.NewManager(managerConfig), cleanup, nil
}

// printReport renders a report when there is one.
func printReport(w io.Writer, formatter formatting.Formatter, report *former.Report) error {
	if report == nil {
		return nil
	}
	if err := formatter.FormatReport(w, report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
