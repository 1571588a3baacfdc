package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LookupFunc reads a single environment variable. Load is always given the
// original lookup so that reading configuration never goes through the guard.
type LookupFunc func(name string) (string, bool)

// Load builds the configuration from defaults, the optional YAML file named by
// ONESHOT_CONFIG, and environment variable overrides.
//
// The returned Config is never nil. Problems do not abort loading: the
// affected values keep their defaults and are reported in the returned error.
func Load(lookup LookupFunc) (*Config, error) {
	cfg := NewDefaultConfig()
	var errs []error

	if path, ok := lookup(EnvConfigFile); ok && path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg = fileCfg
		}
	}

	if fieldErrs := applyEnvOverrides(cfg, lookup); len(fieldErrs) > 0 {
		errs = append(errs, ValidationError{Errors: fieldErrs})
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		var verr ValidationError
		if errors.As(err, &verr) {
			resetInvalid(cfg, verr.Errors)
		}
		errs = append(errs, err)
	}

	return cfg, errors.Join(errs...)
}

// LoadFile reads a YAML configuration file and applies defaults to it.
// It does not validate; Load does that after environment overrides.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 - path comes from the operator's own configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Values that cannot be parsed are skipped and reported.
func applyEnvOverrides(cfg *Config, lookup LookupFunc) []FieldError {
	var errs []FieldError

	if val, ok := lookup(EnvTokens); ok && val != "" {
		cfg.Tokens = NameList(val)
	}
	if val, ok := lookup(EnvSkipUnset); ok && val != "" {
		if b, err := ParseBool(val); err == nil {
			cfg.SkipUnset = b
		} else {
			errs = append(errs, FieldError{Field: EnvSkipUnset, Message: err.Error()})
		}
	}
	if val, ok := lookup(EnvCacheFile); ok && val != "" {
		cfg.CacheFile = val
	}
	if val, ok := lookup(EnvCacheFileWait); ok && val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.CacheFileWait = d
		} else {
			errs = append(errs, FieldError{Field: EnvCacheFileWait, Message: "invalid duration"})
		}
	}

	// Logging overrides
	if val, ok := lookup(EnvLogLevel); ok && val != "" {
		cfg.Logging.Level = val
	}
	if val, ok := lookup(EnvLogFormat); ok && val != "" {
		cfg.Logging.Format = val
	}
	if val, ok := lookup(EnvDebug); ok && val != "" {
		// Unrecognized debug values mean "off", as any non-truthy value did before.
		b, _ := ParseBool(val)
		cfg.Logging.Debug = b
	}

	// Metrics overrides
	if val, ok := lookup(EnvMetricsEnabled); ok && val != "" {
		if b, err := ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		} else {
			errs = append(errs, FieldError{Field: EnvMetricsEnabled, Message: err.Error()})
		}
	}
	if val, ok := lookup(EnvMetricsFile); ok && val != "" {
		cfg.Metrics.TextfilePath = val
	}

	return errs
}

// ParseBool parses a boolean-like flag value. It accepts 1/0, true/false,
// yes/no and on/off, case-insensitively, with surrounding whitespace ignored.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", s)
	}
}

// resetInvalid puts every field that failed validation back to its default.
func resetInvalid(cfg *Config, errs []FieldError) {
	for _, fe := range errs {
		switch fe.Field {
		case "logging.level":
			cfg.Logging.Level = DefaultLoggingLevel
		case "logging.format":
			cfg.Logging.Format = DefaultLoggingFormat
		case "cache_file_wait":
			cfg.CacheFileWait = DefaultCacheFileWait
		case "metrics.namespace":
			cfg.Metrics.Namespace = DefaultMetricsNamespace
		case "metrics.subsystem":
			cfg.Metrics.Subsystem = DefaultMetricsSubsystem
		}
	}
}
