package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetValue_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, SetValue(path, "ui.show_history", "false"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ui:\n  show_history: false\n", string(data))
}

func TestSetValue_PreservesCommentsAndOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SetValue(path, "max_line_length", "120"))
	require.NoError(t, SetValue(path, "tracing.exporter", "stdout"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, "# Longest line accepted, in bytes")
	require.Contains(t, out, "max_line_length: 120")
	require.Contains(t, out, "show_line_numbers: true")
	require.Contains(t, out, "exporter: stdout")

	cfg, err := loadYAML(t, out)
	require.NoError(t, err)
	require.Equal(t, 120, cfg.MaxLineLength)
	require.Equal(t, "stdout", cfg.Tracing.Exporter)
}

func TestSetValue_Rejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit: 3\n"), 0o600))

	require.ErrorContains(t, SetValue(path, "colour", "red"), "unknown config key")
	require.ErrorContains(t, SetValue(path, "max_line_length", "0"), "invalid config")
	require.ErrorContains(t, SetValue(path, "tracing.sample_rate", "7"), "invalid config")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "history_limit: 3\n", string(data), "rejected values leave the file alone")
}

func TestSetValue_ReplacesScalarWithMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watch: on\n"), 0o600))

	require.NoError(t, SetValue(path, "watch.enabled", "false"))

	cfg, err := loadYAMLFile(t, path)
	require.NoError(t, err)
	require.False(t, cfg.Watch.Enabled)
}

func loadYAMLFile(t *testing.T, path string) (Config, error) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return loadYAML(t, string(data))
}
