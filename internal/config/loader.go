package config

import (
	"errors"
	"os"
	"path/filepath"

	"realmform/pkg/logging"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the configuration file looked up in the working
// directory when no path is given.
const ConfigFileName = "realmform.yaml"

// LoadConfig loads configuration from path on top of the defaults. A missing
// file yields the defaults unless the path was given explicitly. Relative
// source, state and metrics paths are resolved against the directory of the
// configuration file.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}
	config := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			logging.Info("ConfigLoader", "No %s found, using defaults", path)
			return config, nil
		}
		return Config{}, NewConfigurationError(path, ErrorTypeIO, "failed to read configuration file", err.Error())
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		cfgErr := NewConfigurationError(path, ErrorTypeParse, "malformed configuration file", err.Error())
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			cfgErr.Suggestions = []string{"Check the field types against the documented configuration keys"}
		}
		return Config{}, cfgErr
	}

	config.resolvePaths(filepath.Dir(path))
	logging.Info("ConfigLoader", "Loaded configuration from %s", path)
	return config, nil
}

func (c *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	for i, p := range c.Sources.Paths {
		c.Sources.Paths[i] = resolve(p)
	}
	c.State.Path = resolve(c.State.Path)
	c.Metrics.Textfile = resolve(c.Metrics.Textfile)
}
