package render

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/retain/internal/config"
	"github.com/vango-dev/retain/pkg/vdom"
)

// Default tracer name for retain renderers.
const defaultTracerName = "retain"

// GCPolicy decides when the registry is swept for tombstoned nodes.
type GCPolicy uint8

const (
	// GCOnEntry sweeps on every reconciler entry, once per visited node.
	GCOnEntry GCPolicy = iota
	// GCOnCommit sweeps once after each top-level render pass.
	GCOnCommit
	// GCManual sweeps only when Collect is called.
	GCManual
)

// String returns the config spelling of the policy.
func (p GCPolicy) String() string {
	switch p {
	case GCOnEntry:
		return config.GCPolicyEntry
	case GCOnCommit:
		return config.GCPolicyCommit
	case GCManual:
		return config.GCPolicyManual
	default:
		return "unknown"
	}
}

// ParseGCPolicy parses the config spelling of a policy.
func ParseGCPolicy(s string) (GCPolicy, bool) {
	switch s {
	case config.GCPolicyEntry:
		return GCOnEntry, true
	case config.GCPolicyCommit:
		return GCOnCommit, true
	case config.GCPolicyManual:
		return GCManual, true
	}
	return GCOnEntry, false
}

// Event describes one reconciler decision.
type Event struct {
	Op   Op
	Kind vdom.Kind // Kind of the new node, or of the old node for OpDelete
	ID   vdom.ID   // New node, NoID for OpDelete
	Prev vdom.ID   // Previous node, NoID for OpCreate
}

// Rebind reports whether an update substituted a new node for an old one.
func (e Event) Rebind() bool {
	return e.Op == OpUpdate && e.ID != e.Prev
}

// Options configures a Renderer.
type Options struct {
	// GCThreshold is the registry size that must be exceeded before a
	// sweep removes tombstoned nodes.
	GCThreshold int

	// GCPolicy decides when sweeps happen.
	GCPolicy GCPolicy

	// ReclaimState drops the state slots of swept component nodes.
	ReclaimState bool

	// UpdateStyles re-applies style differences when an element is updated.
	// When false only the click listener is refreshed.
	UpdateStyles bool

	// DebugIDs tags created elements with a data-id attribute.
	DebugIDs bool

	// Logger receives one debug record per render pass and one per
	// registry sweep. Use OnReconcile to observe single decisions.
	Logger *slog.Logger

	// Metrics receives counters; nil disables metrics.
	Metrics *Metrics

	// Tracer starts a span per render pass.
	Tracer trace.Tracer

	// OnReconcile, if set, is called for every reconciler decision.
	OnReconcile func(Event)
}

// Option configures a Renderer.
type Option func(*Options)

// WithGCThreshold sets the sweep threshold.
func WithGCThreshold(n int) Option {
	return func(o *Options) {
		o.GCThreshold = n
	}
}

// WithGCPolicy sets the sweep trigger policy.
func WithGCPolicy(p GCPolicy) Option {
	return func(o *Options) {
		o.GCPolicy = p
	}
}

// WithReclaimState couples state lifetime to node collection.
func WithReclaimState(enabled bool) Option {
	return func(o *Options) {
		o.ReclaimState = enabled
	}
}

// WithStyleUpdates enables style re-application on update.
func WithStyleUpdates(enabled bool) Option {
	return func(o *Options) {
		o.UpdateStyles = enabled
	}
}

// WithDebugIDs enables data-id attributes on created elements.
func WithDebugIDs(enabled bool) Option {
	return func(o *Options) {
		o.DebugIDs = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithTracer sets the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}

// WithObserver sets the per-decision callback.
func WithObserver(fn func(Event)) Option {
	return func(o *Options) {
		o.OnReconcile = fn
	}
}

// FromConfig applies the render section of retain.json.
func FromConfig(cfg config.RenderConfig) Option {
	return func(o *Options) {
		if cfg.GCThreshold > 0 {
			o.GCThreshold = cfg.GCThreshold
		}
		if p, ok := ParseGCPolicy(cfg.GCPolicy); ok {
			o.GCPolicy = p
		}
		if cfg.ReclaimState != nil {
			o.ReclaimState = *cfg.ReclaimState
		}
		if cfg.UpdateStyles != nil {
			o.UpdateStyles = *cfg.UpdateStyles
		}
		if cfg.DebugIDs {
			o.DebugIDs = true
		}
	}
}

// defaultOptions returns the default renderer options.
func defaultOptions() Options {
	return Options{
		GCThreshold:  config.DefaultGCThreshold,
		GCPolicy:     GCOnEntry,
		ReclaimState: true,
		UpdateStyles: true,
		Logger:       slog.Default().With("component", "render"),
		Tracer:       otel.Tracer(defaultTracerName),
	}
}
