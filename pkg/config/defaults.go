package config

import "time"

// Environment variables read by Load.
const (
	EnvTokens         = "ONESHOT_TOKENS"
	EnvSkipUnset      = "ONESHOT_SKIP_UNSET"
	EnvCacheFile      = "ONESHOT_CACHE_FILE"
	EnvCacheFileWait  = "ONESHOT_CACHE_FILE_WAIT"
	EnvDebug          = "ONESHOT_DEBUG"
	EnvLogLevel       = "ONESHOT_LOG_LEVEL"
	EnvLogFormat      = "ONESHOT_LOG_FORMAT"
	EnvMetricsEnabled = "ONESHOT_METRICS_ENABLED"
	EnvMetricsFile    = "ONESHOT_METRICS_TEXTFILE"
	EnvConfigFile     = "ONESHOT_CONFIG"
)

// Default values for configuration fields.
const (
	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"

	// Metrics defaults
	DefaultMetricsEnabled   = false
	DefaultMetricsNamespace = "oneshot"
	DefaultMetricsSubsystem = "guard"

	// Hand-off defaults
	DefaultCacheFileWait = time.Duration(0)
	MaxCacheFileWait     = time.Minute
)

// NewDefaultConfig returns a configuration with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields with their default values. Fields that
// already hold a value are left untouched.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
