package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/retain/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "retain.json"

	// DefaultGCThreshold is the registry size above which tombstoned nodes
	// are collected.
	DefaultGCThreshold = 42

	// DefaultPort is the default live server port.
	DefaultPort = 3000

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"
)

// GC trigger policies.
const (
	GCPolicyEntry  = "entry"  // every reconciler entry
	GCPolicyCommit = "commit" // once after each top-level render pass
	GCPolicyManual = "manual" // only when Collect is called explicitly
)

// Frame codecs for the live server.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Log formats.
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the complete retain.json configuration.
type Config struct {
	// Render configures the reconciler.
	Render RenderConfig `json:"render,omitempty"`

	// Live configures the websocket live server.
	Live LiveConfig `json:"live,omitempty"`

	// Log configures the process logger.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains reconciler settings.
type RenderConfig struct {
	// GCThreshold is the registry size that must be exceeded before a
	// collection removes tombstoned nodes. Loading fills an omitted value
	// with DefaultGCThreshold; Validate rejects anything below 1.
	GCThreshold int `json:"gcThreshold,omitempty"`

	// GCPolicy decides when collection runs: entry, commit or manual.
	GCPolicy string `json:"gcPolicy,omitempty"`

	// ReclaimState drops state entries of collected component nodes.
	ReclaimState *bool `json:"reclaimState,omitempty"`

	// UpdateStyles re-applies style differences on Update.
	UpdateStyles *bool `json:"updateStyles,omitempty"`

	// DebugIDs tags created elements with a data-id attribute.
	DebugIDs bool `json:"debugIds,omitempty"`
}

// LiveConfig contains live server settings.
type LiveConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Codec is the websocket frame codec: json or msgpack.
	Codec string `json:"codec,omitempty"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `json:"metrics,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is one of auto, text, json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from retain.json in the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E201").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New("E201").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E201").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads retain.json from dir, falling back to defaults when
// the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// Exists reports whether dir contains a retain.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return err
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from, if any.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in zero values.
func (c *Config) applyDefaults() {
	if c.Render.GCThreshold == 0 {
		c.Render.GCThreshold = DefaultGCThreshold
	}
	if c.Render.GCPolicy == "" {
		c.Render.GCPolicy = GCPolicyEntry
	}
	if c.Render.ReclaimState == nil {
		c.Render.ReclaimState = boolPtr(true)
	}
	if c.Render.UpdateStyles == nil {
		c.Render.UpdateStyles = boolPtr(true)
	}

	if c.Live.Host == "" {
		c.Live.Host = DefaultHost
	}
	if c.Live.Port == 0 {
		c.Live.Port = DefaultPort
	}
	if c.Live.Codec == "" {
		c.Live.Codec = CodecJSON
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = LogFormatAuto
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Render.GCThreshold <= 0 {
		return errors.New("E202").
			WithDetailf("gcThreshold must be positive, got %d", c.Render.GCThreshold)
	}
	switch c.Render.GCPolicy {
	case GCPolicyEntry, GCPolicyCommit, GCPolicyManual:
	default:
		return errors.New("E202").
			WithDetailf("unknown gcPolicy %q", c.Render.GCPolicy).
			WithSuggestion("Use one of: entry, commit, manual")
	}

	if c.Live.Port < 1 || c.Live.Port > 65535 {
		return errors.New("E203").
			WithDetailf("port must be between 1 and 65535, got %d", c.Live.Port)
	}
	switch c.Live.Codec {
	case CodecJSON, CodecMsgpack:
	default:
		return errors.New("E203").
			WithDetailf("unknown codec %q", c.Live.Codec).
			WithSuggestion("Use one of: json, msgpack")
	}

	switch c.Log.Format {
	case LogFormatAuto, LogFormatText, LogFormatJSON:
	default:
		return errors.New("E201").
			WithDetailf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// LiveAddress returns the host:port the live server listens on.
func (c *Config) LiveAddress() string {
	return net.JoinHostPort(c.Live.Host, strconv.Itoa(c.Live.Port))
}

func boolPtr(b bool) *bool {
	return &b
}
