package config

import "time"

const (
	// DefaultAdminRealm is the realm an identity server always has.
	DefaultAdminRealm = "master"

	// DefaultStatePath is the state database used when none is configured.
	DefaultStatePath = "realmform.db"

	// DefaultDebounce is the watch mode quiet period.
	DefaultDebounce = 500 * time.Millisecond
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() Config {
	return Config{
		AdminRealm: DefaultAdminRealm,
		SyncMode:   "FULL",
		State:      StateConfig{Path: DefaultStatePath},
		Logging:    LoggingConfig{Level: "info", Format: "text"},
		Watch:      WatchConfig{Debounce: DefaultDebounce},
	}
}
