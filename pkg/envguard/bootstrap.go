package envguard

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/oneshot/pkg/config"
	"mercator-hq/oneshot/pkg/telemetry/logging"
	"mercator-hq/oneshot/pkg/telemetry/metrics"
)

// BootstrapOptions overrides the process defaults used by Bootstrap.
type BootstrapOptions struct {
	// Resolver binds the originals. Defaults to ProcessResolver.
	Resolver Resolver

	// Table is the environment to scrub. Defaults to ProcessTable.
	Table Table

	// Fatal handles a getenv binding failure. Defaults to ExitOnFatal.
	Fatal FatalFunc

	// LogWriter receives diagnostics. Defaults to stderr.
	LogWriter io.Writer

	// Registry receives metrics when they are enabled. Defaults to a new
	// registry.
	Registry *prometheus.Registry
}

// Process is a bootstrapped guard and the pieces it was built from.
type Process struct {
	Engine  *Engine
	Config  *config.Config
	Symbols *SymbolTable
	Logger  *slog.Logger

	// Metrics is nil when metrics are disabled.
	Metrics *metrics.Collector
}

// Bootstrap binds the originals, reads configuration through them, builds
// the engine and loads any pre-staged hand-off file.
func Bootstrap(ctx context.Context, opts BootstrapOptions) *Process {
	symbols := NewSymbolTable(opts.Resolver, opts.Fatal)
	syms := symbols.Bind()

	cfg, cfgErr := config.Load(config.LookupFunc(syms.Getenv))

	redactor := logging.NewRedactor()
	logger := newLogger(cfg, opts.LogWriter, redactor)
	if cfgErr != nil {
		logger.Warn("configuration problems, affected settings use defaults", "error", cfgErr)
	}

	p := &Process{
		Config:  cfg,
		Symbols: symbols,
		Logger:  logger,
	}

	engineOpts := Options{
		Tokens:        cfg.Tokens.String(),
		SkipUnset:     cfg.SkipUnset,
		CacheFileWait: cfg.CacheFileWait,
		Table:         opts.Table,
		Logger:        logger,
		Redactor:      redactor,
	}
	if cfg.Metrics.Enabled {
		registry := opts.Registry
		if registry == nil {
			registry = prometheus.NewRegistry()
		}
		p.Metrics = metrics.NewCollector(&cfg.Metrics, registry)
		engineOpts.Recorder = p.Metrics
	}

	p.Engine = NewEngine(symbols, engineOpts)
	p.Engine.LoadPrestaged(ctx, cfg.CacheFile)

	return p
}

// WriteMetrics writes the metrics textfile when one is configured.
func (p *Process) WriteMetrics() error {
	if p.Metrics == nil || p.Config.Metrics.TextfilePath == "" {
		return nil
	}
	return p.Metrics.WriteTextfile("")
}

func newLogger(cfg *config.Config, w io.Writer, redactor *logging.Redactor) *slog.Logger {
	level := cfg.Logging.Level
	if cfg.Logging.Debug {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:    level,
		Format:   cfg.Logging.Format,
		Writer:   w,
		Redactor: redactor,
	})
	if err != nil {
		// Validated values cannot fail; fall back to defaults regardless.
		logger, _ = logging.New(logging.Config{Writer: w, Redactor: redactor})
	}
	return logger
}
