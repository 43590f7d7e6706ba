package config

import "time"

// Config is the top-level configuration structure for realmform.
type Config struct {
	AdminRealm string         `yaml:"adminRealm,omitempty"` // Realm that is never deleted (default: master)
	DryRun     bool           `yaml:"dryRun,omitempty"`     // Preview instead of committing
	SyncMode   string         `yaml:"syncMode,omitempty"`   // Root sync mode, FULL or IGNORE (default: FULL)
	Sources    SourcesConfig  `yaml:"sources"`
	Template   TemplateConfig `yaml:"template,omitempty"`
	State      StateConfig    `yaml:"state,omitempty"`
	Logging    LoggingConfig  `yaml:"logging,omitempty"`
	Metrics    MetricsConfig  `yaml:"metrics,omitempty"`
	Watch      WatchConfig    `yaml:"watch,omitempty"`
}

// SourcesConfig names where realm documents are read from.
type SourcesConfig struct {
	Paths     []string         `yaml:"paths,omitempty"`     // Files or directories of *.json, *.yaml, *.yml
	ConfigMap *ConfigMapSource `yaml:"configMap,omitempty"` // Optional Kubernetes ConfigMap
}

// ConfigMapSource identifies a ConfigMap holding realm documents.
type ConfigMapSource struct {
	Namespace  string `yaml:"namespace"`
	Name       string `yaml:"name"`
	Kubeconfig string `yaml:"kubeconfig,omitempty"` // Default loading rules when empty
}

// TemplateConfig enables rendering documents as templates.
type TemplateConfig struct {
	Enabled bool           `yaml:"enabled,omitempty"`
	Values  map[string]any `yaml:"values,omitempty"`
}

// StateConfig locates the state database.
type StateConfig struct {
	Path string `yaml:"path,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn or error
	Format string `yaml:"format,omitempty"` // text or json
}

// MetricsConfig controls run metrics export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"` // node-exporter textfile collector output
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"`
}
