package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func loadYAML(t *testing.T, content string) (Config, error) {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(content)))
	return Load(v)
}

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestLoad_EmptyFileGivesDefaults(t *testing.T) {
	cfg, err := loadYAML(t, "")
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_TemplateMatchesDefaults(t *testing.T) {
	cfg, err := loadYAML(t, DefaultConfigTemplate())
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := loadYAML(t, `
max_line_length: 80
history_limit: 50
ui:
  show_history: false
watch:
  debounce: 1s
tracing:
  enabled: true
  exporter: stdout
  sample_rate: 0.5
`)
	require.NoError(t, err)
	require.Equal(t, 80, cfg.MaxLineLength)
	require.Equal(t, 50, cfg.HistoryLimit)
	require.False(t, cfg.UI.ShowHistory)
	require.True(t, cfg.UI.ShowLineNumbers, "unset keys keep defaults")
	require.Equal(t, time.Second, cfg.Watch.Debounce)
	require.True(t, cfg.Tracing.Enabled)
	require.Equal(t, "stdout", cfg.Tracing.Exporter)
	require.InDelta(t, 0.5, cfg.Tracing.SampleRate, 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero line length", func(c *Config) { c.MaxLineLength = 0 }, "max_line_length"},
		{"negative history", func(c *Config) { c.HistoryLimit = -1 }, "history_limit"},
		{"bad markdown style", func(c *Config) { c.UI.MarkdownStyle = "neon" }, "markdown_style"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample_rate"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "kafka" }, "tracing.exporter"},
		{"otlp endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
			c.Tracing.OTLPEndpoint = ""
		}, "otlp_endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestTracingConfig_Provider(t *testing.T) {
	tc := Defaults().Tracing
	p := tc.Provider()
	require.False(t, p.Enabled)
	require.Equal(t, "file", p.Exporter)
	if DefaultTracesFilePath() != "" {
		require.Equal(t, DefaultTracesFilePath(), p.FilePath)
	}

	tc.FilePath = "/tmp/t.jsonl"
	tc.Enabled = true
	p = tc.Provider()
	require.True(t, p.Enabled)
	require.Equal(t, "/tmp/t.jsonl", p.FilePath)
	require.Equal(t, "linedit", p.ServiceName)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	require.Contains(t, keys, "max_line_length")
	require.Contains(t, keys, "tracing.sample_rate")
	require.IsNonDecreasing(t, keys)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
