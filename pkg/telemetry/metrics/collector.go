package metrics

import (
	"fmt"

	"mercator-hq/oneshot/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records guard activity into a Prometheus registry.
//
// All methods are safe for concurrent use and are cheap enough to call while
// the guard holds its lock.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	protected      *prometheus.GaugeVec
	firstAccess    *prometheus.CounterVec
	cacheHits      prometheus.Counter
	passthrough    *prometheus.CounterVec
	scrubs         *prometheus.CounterVec
	handoff        *prometheus.CounterVec
	handoffEntries prometheus.Counter
}

// NewCollector creates a collector and registers its metrics. If registry is
// nil a fresh registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		protected: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "protected_names",
				Help:      "Number of protected environment variable names",
			},
			[]string{"source"},
		),

		firstAccess: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "first_access_total",
				Help:      "Total first reads of protected names",
			},
			[]string{"origin", "result"},
		),

		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_hits_total",
				Help:      "Total reads of protected names served from the cache",
			},
		),

		passthrough: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "passthrough_total",
				Help:      "Total reads of unprotected names passed to the original lookup",
			},
			[]string{"entry"},
		),

		scrubs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "scrubs_total",
				Help:      "Total scrub attempts by outcome",
			},
			[]string{"outcome"},
		),

		handoff: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "handoff_total",
				Help:      "Total pre-staged hand-off file loads by outcome",
			},
			[]string{"outcome"},
		),

		handoffEntries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "handoff_entries_total",
				Help:      "Total protected values loaded from hand-off files",
			},
		),
	}

	registry.MustRegister(
		c.protected,
		c.firstAccess,
		c.cacheHits,
		c.passthrough,
		c.scrubs,
		c.handoff,
		c.handoffEntries,
	)

	return c
}

// RecordRegistry records the size of the protected-name set.
func (c *Collector) RecordRegistry(source string, count int) {
	if !c.config.Enabled {
		return
	}
	c.protected.Reset()
	c.protected.WithLabelValues(source).Set(float64(count))
}

// RecordFirstAccess records the first read of a protected name.
func (c *Collector) RecordFirstAccess(origin string, present bool) {
	if !c.config.Enabled {
		return
	}
	result := "absent"
	if present {
		result = "present"
	}
	c.firstAccess.WithLabelValues(origin, result).Inc()
}

// RecordCacheHit records a read served from the cache.
func (c *Collector) RecordCacheHit() {
	if !c.config.Enabled {
		return
	}
	c.cacheHits.Inc()
}

// RecordPassthrough records a read of an unprotected name.
func (c *Collector) RecordPassthrough(entry string) {
	if !c.config.Enabled {
		return
	}
	c.passthrough.WithLabelValues(entry).Inc()
}

// RecordScrub records the outcome of a scrub.
func (c *Collector) RecordScrub(outcome string) {
	if !c.config.Enabled {
		return
	}
	c.scrubs.WithLabelValues(outcome).Inc()
}

// RecordHandoff records a hand-off file load and how many values it supplied.
func (c *Collector) RecordHandoff(outcome string, loaded int) {
	if !c.config.Enabled {
		return
	}
	c.handoff.WithLabelValues(outcome).Inc()
	if loaded > 0 {
		c.handoffEntries.Add(float64(loaded))
	}
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the current metrics to path in the Prometheus text
// format. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if path == "" {
		path = c.config.TextfilePath
	}
	if path == "" {
		return fmt.Errorf("no metrics textfile path configured")
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}
