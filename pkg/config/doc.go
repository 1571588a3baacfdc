// Package config provides configuration management for the one-shot token guard.
//
// Configuration is read once, at load time, through the original (non-intercepted)
// environment lookup. It can come from an optional YAML file and from environment
// variables, with environment variables taking precedence.
//
// # Configuration Loading
//
//	cfg, err := config.Load(os.LookupEnv)
//
// Load always returns a usable configuration. When the file cannot be read or a
// value fails validation, the offending part falls back to its default and the
// returned error describes what was ignored. The guard must keep protecting
// secrets even when its configuration is broken.
//
// # Environment Variables
//
//   - ONESHOT_TOKENS: comma-separated list of protected variable names
//   - ONESHOT_SKIP_UNSET: cache values but leave them in the environment (debugging only)
//   - ONESHOT_CACHE_FILE: path of a pre-staged hand-off file
//   - ONESHOT_CACHE_FILE_WAIT: how long to wait for the hand-off file to appear
//   - ONESHOT_DEBUG: truthy value forces debug logging
//   - ONESHOT_LOG_LEVEL, ONESHOT_LOG_FORMAT: logging overrides
//   - ONESHOT_METRICS_ENABLED, ONESHOT_METRICS_TEXTFILE: metrics overrides
//   - ONESHOT_CONFIG: path of a YAML configuration file
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file named by ONESHOT_CONFIG
//  3. Environment variable overrides
//  4. Validation (invalid fields are reset to defaults)
//
// # YAML Example
//
//	tokens:
//	  - GITHUB_TOKEN
//	  - OPENAI_API_KEY
//	cache_file: /run/oneshot/handoff.env
//	cache_file_wait: 2s
//	logging:
//	  level: info
//	  format: json
//	metrics:
//	  enabled: true
//	  textfile_path: /var/lib/node_exporter/oneshot.prom
package config
