package live

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/retain/pkg/render"
	"github.com/vango-dev/retain/pkg/vdom"
)

// Config configures a Server.
type Config struct {
	// Address is the listen address for Run.
	// Default: "localhost:3000".
	Address string

	// Root builds the tree every new session mounts. Required.
	Root func() *vdom.Node

	// Codec is the default frame codec, "json" or "msgpack". A client may
	// pick another with the codec query parameter of /ws.
	// Default: "json".
	Codec string

	// Title is the page title of the bundled client.
	Title string

	// RenderOptions are applied to every session's renderer.
	RenderOptions []render.Option

	// Metrics serves /metrics and records render and session metrics.
	Metrics bool

	// Registry receives the metrics. Default: a fresh registry.
	Registry *prometheus.Registry

	// Session configures each websocket session.
	Session SessionConfig

	// CheckOrigin validates websocket upgrade origins.
	// Default: same-origin check of gorilla/websocket.
	CheckOrigin func(r *http.Request) bool

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger
}

// SessionConfig holds configuration for individual sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message from the client.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 4KB.
	MaxMessageSize int64
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    4 * 1024,
	}
}

func (c *Config) applyDefaults() {
	if c.Address == "" {
		c.Address = "localhost:3000"
	}
	if c.Codec == "" {
		c.Codec = "json"
	}
	if c.Title == "" {
		c.Title = "retain"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}

	d := DefaultSessionConfig()
	if c.Session.ReadTimeout == 0 {
		c.Session.ReadTimeout = d.ReadTimeout
	}
	if c.Session.WriteTimeout == 0 {
		c.Session.WriteTimeout = d.WriteTimeout
	}
	if c.Session.HeartbeatInterval == 0 {
		c.Session.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.Session.MaxMessageSize == 0 {
		c.Session.MaxMessageSize = d.MaxMessageSize
	}
}
