package render

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics of renderers.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "retain").
	Namespace string

	// Subsystem is the metrics subsystem (default: "render").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "retain",
		Subsystem: "render",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors shared by any number of renderers.
// A nil *Metrics records nothing.
type Metrics struct {
	opsTotal        *prometheus.CounterVec
	passesTotal     *prometheus.CounterVec
	passDuration    *prometheus.HistogramVec
	gcSweeps        prometheus.Counter
	gcCollected     prometheus.Counter
	registryEntries prometheus.Gauge
}

// NewMetrics creates and registers the renderer metrics.
//
// Metrics collected:
//   - retain_render_ops_total: Counter of reconciler decisions by op
//   - retain_render_passes_total: Counter of render passes by trigger
//   - retain_render_pass_duration_seconds: Histogram of pass duration by trigger
//   - retain_render_gc_sweeps_total: Counter of registry sweeps
//   - retain_render_gc_collected_total: Counter of nodes removed by sweeps
//   - retain_render_registry_entries: Gauge of registry entries across renderers
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		opsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "ops_total",
			Help:        "Total number of reconciler decisions",
			ConstLabels: cfg.ConstLabels,
		}, []string{"op"}),

		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of render passes",
			ConstLabels: cfg.ConstLabels,
		}, []string{"trigger"}),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"trigger"}),

		gcSweeps: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "gc_sweeps_total",
			Help:        "Total number of registry sweeps",
			ConstLabels: cfg.ConstLabels,
		}),

		gcCollected: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "gc_collected_total",
			Help:        "Total number of tombstoned nodes removed from registries",
			ConstLabels: cfg.ConstLabels,
		}),

		registryEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "registry_entries",
			Help:        "Number of node records held by all registries",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

func (m *Metrics) recordOp(op Op) {
	if m != nil {
		m.opsTotal.WithLabelValues(op.String()).Inc()
	}
}

func (m *Metrics) recordPass(trigger string, d time.Duration) {
	if m != nil {
		m.passesTotal.WithLabelValues(trigger).Inc()
		m.passDuration.WithLabelValues(trigger).Observe(d.Seconds())
	}
}

func (m *Metrics) recordSweep(collected int) {
	if m != nil {
		m.gcSweeps.Inc()
		m.gcCollected.Add(float64(collected))
		m.registryEntries.Sub(float64(collected))
	}
}

func (m *Metrics) addEntries(n int) {
	if m != nil && n != 0 {
		m.registryEntries.Add(float64(n))
	}
}
