// Package config provides configuration management for realmform.
//
// Configuration is read from a single YAML file, realmform.yaml in the working
// directory unless --config names another file. A missing default file yields
// the defaults; a missing explicit file is an error.
//
// # Configuration File
//
//	adminRealm: master
//	dryRun: false
//	syncMode: FULL
//	sources:
//	  paths: [./realms]
//	  configMap:
//	    namespace: iam
//	    name: realms
//	template:
//	  enabled: true
//	  values: {env: prod}
//	state:
//	  path: realmform.db
//	logging:
//	  level: info
//	  format: text
//	metrics:
//	  textfile: /var/lib/node_exporter/realmform.prom
//	watch:
//	  debounce: 500ms
//
// Relative paths are resolved against the directory of the configuration
// file. Command line flags override file values and are applied before
// Validate runs.
//
// # Errors
//
// Loading fails with a ConfigurationError; Validate returns a
// ConfigurationErrorCollection holding every problem it finds so all of them
// can be reported at once.
package config
