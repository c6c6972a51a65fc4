// Package config provides configuration types, defaults, and persistence for linedit.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/linedit/internal/buffer"
	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/tracing"
	"github.com/zjrosen/linedit/internal/watcher"
)

// EnvPrefix prefixes environment overrides, e.g. LINEDIT_MAX_LINE_LENGTH.
const EnvPrefix = "LINEDIT"

// Config holds all configuration options for linedit.
type Config struct {
	MaxLineLength int             `mapstructure:"max_line_length"`
	HistoryLimit  int             `mapstructure:"history_limit"` // 0 = unbounded
	UI            UIConfig        `mapstructure:"ui"`
	Clipboard     ClipboardConfig `mapstructure:"clipboard"`
	Watch         WatchConfig     `mapstructure:"watch"`
	Tracing       TracingConfig   `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowLineNumbers bool   `mapstructure:"show_line_numbers"`
	ShowHistory     bool   `mapstructure:"show_history"`
	MarkdownStyle   string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ClipboardConfig controls where copied lines go.
type ClipboardConfig struct {
	// System mirrors copy and cut into the OS clipboard.
	System bool `mapstructure:"system"`
}

// WatchConfig controls the external change notice.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Exporter is one of "none", "file", "stdout", "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/linedit/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is between 0.0 and 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Provider converts the settings into a tracing configuration, filling in
// the default trace file when none is set.
func (t TracingConfig) Provider() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = t.Enabled
	cfg.Exporter = t.Exporter
	cfg.FilePath = t.FilePath
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	if t.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = t.OTLPEndpoint
	}
	cfg.SampleRate = t.SampleRate
	return cfg
}

// Dir returns ~/.config/linedit, or "" if the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "linedit")
}

// DefaultTracesFilePath returns ~/.config/linedit/traces/traces.jsonl or ""
// if the home directory is unknown.
func DefaultTracesFilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		MaxLineLength: buffer.DefaultMaxLineLength,
		HistoryLimit:  0,
		UI: UIConfig{
			ShowLineNumbers: true,
			ShowHistory:     true,
			MarkdownStyle:   "dark",
		},
		Clipboard: ClipboardConfig{System: false},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: watcher.DefaultDebounce,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: tracing.DefaultOTLPEndpoint,
			SampleRate:   1.0,
		},
	}
}

func defaultValues() map[string]any {
	d := Defaults()
	return map[string]any{
		"max_line_length":       d.MaxLineLength,
		"history_limit":         d.HistoryLimit,
		"ui.show_line_numbers":  d.UI.ShowLineNumbers,
		"ui.show_history":       d.UI.ShowHistory,
		"ui.markdown_style":     d.UI.MarkdownStyle,
		"clipboard.system":      d.Clipboard.System,
		"watch.enabled":         d.Watch.Enabled,
		"watch.debounce":        d.Watch.Debounce,
		"tracing.enabled":       d.Tracing.Enabled,
		"tracing.exporter":      d.Tracing.Exporter,
		"tracing.file_path":     d.Tracing.FilePath,
		"tracing.otlp_endpoint": d.Tracing.OTLPEndpoint,
		"tracing.sample_rate":   d.Tracing.SampleRate,
	}
}

// SetDefaults registers every default with v so that env overrides and
// partially written files still produce a complete Config.
func SetDefaults(v *viper.Viper) {
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
}

// Keys returns every dotted configuration key, sorted.
func Keys() []string {
	return slices.Sorted(maps.Keys(defaultValues()))
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if c.MaxLineLength < 1 {
		return fmt.Errorf("max_line_length must be positive, got %d", c.MaxLineLength)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# linedit configuration

# Longest line accepted, in bytes
max_line_length: 1000

# Undo steps kept (0 = unlimited)
history_limit: 0

ui:
  show_line_numbers: true   # Number lines in the document view
  show_history: true        # Show the undo history pane
  # markdown_style: dark    # Help page style: "dark" (default) or "light"

clipboard:
  system: false             # Also copy cut/copied lines to the OS clipboard

watch:
  enabled: true             # Warn when the file changes on disk
  debounce: 250ms

# OpenTelemetry tracing of editor operations
# tracing:
#   enabled: true
#   exporter: file          # none | file | stdout | otlp
#   file_path: ~/.config/linedit/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
