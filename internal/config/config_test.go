package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "realmform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := writeConfig(t, `
adminRealm: admin
dryRun: true
syncMode: ignore
sources:
  paths: [realms, /abs/realm.yaml]
  configMap:
    namespace: iam
    name: realms
template:
  enabled: true
  values:
    env: prod
state:
  path: state/realmform.db
logging:
  level: debug
  format: json
watch:
  debounce: 2s
`)
	dir := filepath.Dir(path)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "admin", cfg.AdminRealm)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "ignore", cfg.SyncMode)
	assert.Equal(t, []string{filepath.Join(dir, "realms"), "/abs/realm.yaml"}, cfg.Sources.Paths)
	require.NotNil(t, cfg.Sources.ConfigMap)
	assert.Equal(t, "iam", cfg.Sources.ConfigMap.Namespace)
	assert.Equal(t, map[string]any{"env": "prod"}, cfg.Template.Values)
	assert.Equal(t, filepath.Join(dir, "state", "realmform.db"), cfg.State.Path)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "sources:\n  paths: [realms]\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAdminRealm, cfg.AdminRealm)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	var cfgErr ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrorTypeIO, cfgErr.ErrorType)
	assert.Equal(t, "missing.yaml", cfgErr.FileName)
}

func TestLoadConfig_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoadConfig_Malformed(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "watch:\n  debounce: [1]\n"))

	var cfgErr ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrorTypeParse, cfgErr.ErrorType)
	assert.Contains(t, cfgErr.DetailedError(), "Suggestions:")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := GetDefaultConfig()
		cfg.Sources.Paths = []string{"realms"}
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "no sources", modify: func(c *Config) { c.Sources.Paths = nil }, fields: []string{"sources"}},
		{name: "configmap only", modify: func(c *Config) {
			c.Sources.Paths = nil
			c.Sources.ConfigMap = &ConfigMapSource{Namespace: "iam", Name: "realms"}
		}},
		{name: "incomplete configmap", modify: func(c *Config) {
			c.Sources.ConfigMap = &ConfigMapSource{}
		}, fields: []string{"sources.configMap.namespace", "sources.configMap.name"}},
		{name: "bad sync mode", modify: func(c *Config) { c.SyncMode = "PARTIAL" }, fields: []string{"syncMode"}},
		{name: "bad level and format", modify: func(c *Config) {
			c.Logging.Level = "loud"
			c.Logging.Format = "xml"
		}, fields: []string{"logging.level", "logging.format"}},
		{name: "negative debounce", modify: func(c *Config) { c.Watch.Debounce = -time.Second }, fields: []string{"watch.debounce"}},
		{name: "no state outside dry run", modify: func(c *Config) { c.State.Path = "" }, fields: []string{"state.path"}},
		{name: "no state in dry run", modify: func(c *Config) {
			c.State.Path = ""
			c.DryRun = true
		}},
		{name: "empty admin realm", modify: func(c *Config) { c.AdminRealm = "" }, fields: []string{"adminRealm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var errs ConfigurationErrorCollection
			require.True(t, errors.As(err, &errs))
			var fields []string
			for _, e := range errs.Errors {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestConfigurationError_Messages(t *testing.T) {
	err := NewConfigurationError("/etc/realmform.yaml", ErrorTypeParse, "malformed configuration file", "line 3")
	assert.Equal(t, "realmform.yaml: malformed configuration file: line 3", err.Error())

	validation := NewValidationError("sources", "no realm sources configured", "Pass --source")
	assert.Equal(t, "sources: no realm sources configured", validation.Error())
	assert.Contains(t, validation.DetailedError(), "    - Pass --source")

	errs := NewConfigurationErrorCollection()
	errs.Add(err)
	errs.Add(validation)
	assert.Equal(t, "2 configuration errors: realmform.yaml: malformed configuration file: line 3 (and 1 more)", errs.Error())
	assert.Contains(t, errs.DetailedReport(), "Error 2:")

	detail, ok := Explain(fmt.Errorf("loading: %w", validation))
	assert.True(t, ok)
	assert.Contains(t, detail, "Field: sources")

	detail, ok = Explain(*errs)
	assert.True(t, ok)
	assert.Contains(t, detail, "Configuration has 2 error(s):")

	_, ok = Explain(errors.New("boom"))
	assert.False(t, ok)
}
