package config

import (
	"fmt"
	"strings"

	"realmform/internal/definition"
	"realmform/pkg/logging"
)

// Validate checks the configuration and returns a ConfigurationErrorCollection
// holding every problem found.
func (c Config) Validate() error {
	errs := NewConfigurationErrorCollection()

	if len(c.Sources.Paths) == 0 && c.Sources.ConfigMap == nil {
		errs.Add(NewValidationError("sources", "no realm sources configured",
			"Set sources.paths in "+ConfigFileName,
			"Pass --source on the command line",
			"Configure sources.configMap"))
	}
	for i, p := range c.Sources.Paths {
		if err := ValidateRequired(fmt.Sprintf("sources.paths[%d]", i), p); err != nil {
			errs.Add(*err)
		}
	}
	if cm := c.Sources.ConfigMap; cm != nil {
		if err := ValidateRequired("sources.configMap.namespace", cm.Namespace); err != nil {
			errs.Add(*err)
		}
		if err := ValidateRequired("sources.configMap.name", cm.Name); err != nil {
			errs.Add(*err)
		}
	}

	if err := ValidateRequired("adminRealm", c.AdminRealm); err != nil {
		errs.Add(*err)
	}
	if _, err := definition.ParseSyncMode(c.SyncMode); err != nil {
		errs.Add(NewValidationError("syncMode", err.Error()))
	}
	if !c.DryRun {
		if err := ValidateRequired("state.path", c.State.Path); err != nil {
			errs.Add(*err)
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs.Add(NewValidationError("logging.level", err.Error(), "Use one of debug, info, warn, error"))
	}
	if err := ValidateOneOf("logging.format", c.Logging.Format, []string{"text", "json"}); err != nil {
		errs.Add(*err)
	}
	if c.Watch.Debounce < 0 {
		errs.Add(NewValidationError("watch.debounce", fmt.Sprintf("must not be negative, got %s", c.Watch.Debounce)))
	}

	if errs.HasErrors() {
		return *errs
	}
	return nil
}

// NewConfigurationErrorCollection creates a new empty error collection
func NewConfigurationErrorCollection() *ConfigurationErrorCollection {
	return &ConfigurationErrorCollection{
		Errors: make([]ConfigurationError, 0),
	}
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value string) *ConfigurationError {
	if strings.TrimSpace(value) == "" {
		err := NewValidationError(field, "is required")
		return &err
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) *ConfigurationError {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	err := NewValidationError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return &err
}
