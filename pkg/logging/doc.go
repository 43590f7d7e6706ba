// Package logging provides the structured logging used across realmform.
//
// The package wraps Go's slog with a small set of subsystem-tagged helpers so
// every log line carries the component that produced it.
//
// # Usage Examples
//
//	// Initialize with Info level logging to stderr
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("RealmFormer", "Realm %s exists and will be formed", name)
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Warn("ClientFormer", "Client %s was not removed", clientID)
//	logging.Error("StateStore", err, "Failed to commit unit of work")
//
// JSON output is available for log shippers:
//
//	logging.InitForCLIWithFormat(logging.LevelDebug, logging.FormatJSON, os.Stderr)
//
// # Subsystem Organization
//
//   - **Config**: configuration loading and validation
//   - **Source**: document loading from files and ConfigMaps
//   - **<Kind>Former**: reconciliation of one resource kind
//   - **Tracker**: change tracking diagnostics
//   - **StateStore**: persistence of the live state
//   - **ReconcileManager**: run orchestration and watch mode
//   - **FilesystemDetector**: source file watching
//
// Lines logged between StartRun and its end function carry a run attribute,
// so interleaved watch runs can be told apart.
//
// Messages below the configured level are dropped before formatting. Logging
// before initialization is a no-op.
package logging
