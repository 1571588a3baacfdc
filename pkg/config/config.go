package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the token guard.
type Config struct {
	// Tokens is the raw protected-name list. Parsing (splitting, trimming,
	// fallback to defaults) belongs to the name registry, not to this package.
	Tokens NameList `yaml:"tokens"`

	// SkipUnset keeps protected values in the environment after caching them.
	// Intended for debugging only.
	SkipUnset bool `yaml:"skip_unset"`

	// CacheFile is the path of a pre-staged hand-off file written by a trusted
	// launcher. Empty disables the pre-staged bootstrap.
	CacheFile string `yaml:"cache_file"`

	// CacheFileWait bounds how long the loader waits for CacheFile to appear.
	// Zero means the file must already exist.
	CacheFileWait time.Duration `yaml:"cache_file_wait"`

	// Logging contains diagnostic output settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains configuration for diagnostic output.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text", "console").
	// Default: "text"
	Format string `yaml:"format"`

	// Debug forces the debug level regardless of Level.
	Debug bool `yaml:"debug"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "oneshot"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "guard"
	Subsystem string `yaml:"subsystem"`

	// TextfilePath, when set, is where metrics are written in the Prometheus
	// text format (node_exporter textfile collector layout).
	TextfilePath string `yaml:"textfile_path"`
}

// NameList is a comma-separated list of variable names. In YAML it may be
// written either as a single string or as a sequence of strings.
type NameList string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (n *NameList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*n = ""
			return nil
		}
		*n = NameList(node.Value)
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: token names must be strings", item.Line)
			}
			items = append(items, item.Value)
		}
		*n = NameList(strings.Join(items, ","))
		return nil
	default:
		return fmt.Errorf("line %d: tokens must be a string or a list of strings", node.Line)
	}
}

// String returns the raw list.
func (n NameList) String() string {
	return string(n)
}
